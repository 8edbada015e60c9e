package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexUnterminatedQuote   Code = 1001
	LexUnterminatedComment Code = 1002
	LexNotNFC              Code = 1003

	// Структура утверждений
	SynUnterminatedStatement Code = 2001
	SynUnknownKeyword        Code = 2002
	SynUnbalancedParen       Code = 2003
	SynUnbalancedBracket     Code = 2004
	SynTooFewComponents      Code = 2005
	SynEmptyFormula          Code = 2006
	SynTrailingText          Code = 2007

	// Семантические предупреждения
	SemaUnknownRole   Code = 3001
	SemaDuplicateName Code = 3002

	// Внешний инструмент
	ExtCheckFailed Code = 4001
)

var codeTitles = map[Code]string{
	UnknownCode:              "unknown",
	LexUnterminatedQuote:     "unterminated quoted atom",
	LexUnterminatedComment:   "unterminated block comment",
	LexNotNFC:                "quoted atom is not NFC-normalized",
	SynUnterminatedStatement: "statement is not terminated by ').'",
	SynUnknownKeyword:        "unknown statement keyword",
	SynUnbalancedParen:       "unbalanced parentheses",
	SynUnbalancedBracket:     "unbalanced brackets",
	SynTooFewComponents:      "statement needs name, role and formula",
	SynEmptyFormula:          "empty formula",
	SynTrailingText:          "text after the end of a statement",
	SemaUnknownRole:          "unknown formula role",
	SemaDuplicateName:        "duplicate statement name",
	ExtCheckFailed:           "external checker rejected the input",
}

// ID returns the stable identifier, e.g. "TPTP2001".
func (c Code) ID() string {
	return fmt.Sprintf("TPTP%04d", uint16(c))
}

// Title returns a short human-readable description of the code.
func (c Code) Title() string {
	if t, ok := codeTitles[c]; ok {
		return t
	}
	return codeTitles[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
