package errors

import (
	"errors"
)

var (
	ErrMissingFields    = errors.New("missing required fields")
	ErrPinRequired      = errors.New("pin is required")
	ErrInvalidPinFormat = errors.New("pin must be exactly 4 digits")
	ErrInvalidAction    = errors.New("invalid action type")
	ErrInvalidPoints    = errors.New("points must be greater than zero")
	ErrInvalidInput     = errors.New("invalid input")

	ErrCompanyNotFound = errors.New("company not found")
	ErrCardNotFound    = errors.New("card not found")
	ErrTokenNotFound   = errors.New("token not found")

	ErrPinMismatch  = errors.New("pin mismatch")
	ErrUnauthorized = errors.New("unauthorized")

	ErrTokenExpired     = errors.New("token expired")
	ErrTokenAlreadyUsed = errors.New("token already used")
	ErrCardNotComplete  = errors.New("card has not reached the completion threshold")
	ErrInsufficientPts  = errors.New("card does not have enough points")
	ErrCardAlreadyExist = errors.New("card already exists for this store")

	ErrIssuance = errors.New("could not issue transaction token")
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindAuth
	KindState
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	case KindState:
		return "state"
	default:
		return "internal"
	}
}

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrMissingFields, KindValidation},
	{ErrPinRequired, KindValidation},
	{ErrInvalidPinFormat, KindValidation},
	{ErrInvalidAction, KindValidation},
	{ErrInvalidPoints, KindValidation},
	{ErrInvalidInput, KindValidation},
	{ErrCompanyNotFound, KindNotFound},
	{ErrCardNotFound, KindNotFound},
	{ErrTokenNotFound, KindNotFound},
	{ErrPinMismatch, KindAuth},
	{ErrUnauthorized, KindAuth},
	{ErrTokenExpired, KindState},
	{ErrTokenAlreadyUsed, KindState},
	{ErrCardNotComplete, KindState},
	{ErrInsufficientPts, KindState},
	{ErrCardAlreadyExist, KindState},
}

// KindOf returns the Kind of the first known sentinel wrapped by err.
// Unknown errors, including ErrIssuance, are internal.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// Messages shown to end users. Kept in Portuguese like the app UI.
const (
	MsgPinValid        = "PIN válido"
	MsgPinRequired     = "Digite o PIN da loja"
	MsgPinFormat       = "O PIN deve ter 4 dígitos"
	MsgPinIncorrect    = "PIN incorreto"
	MsgCompanyNotFound = "Empresa não encontrada"
	MsgMissingFields   = "Campos obrigatórios ausentes"
	MsgInvalidInput    = "Dados inválidos"
	MsgInternal        = "Erro interno do servidor"
)

var messages = []struct {
	err error
	msg string
}{
	{ErrMissingFields, MsgMissingFields},
	{ErrPinRequired, MsgPinRequired},
	{ErrInvalidPinFormat, MsgPinFormat},
	{ErrInvalidAction, "Ação inválida"},
	{ErrInvalidPoints, "Quantidade de pontos inválida"},
	{ErrInvalidInput, MsgInvalidInput},
	{ErrCompanyNotFound, MsgCompanyNotFound},
	{ErrCardNotFound, "Cartão não encontrado"},
	{ErrTokenNotFound, "QR code inválido"},
	{ErrPinMismatch, MsgPinIncorrect},
	{ErrUnauthorized, "Não autorizado"},
	{ErrTokenExpired, "QR code expirado"},
	{ErrTokenAlreadyUsed, "QR code já utilizado"},
	{ErrCardNotComplete, "Cartão ainda não está completo"},
	{ErrInsufficientPts, "Pontos insuficientes"},
	{ErrCardAlreadyExist, "Você já possui um cartão desta loja"},
	{ErrIssuance, "Não foi possível gerar o QR code"},
}

// Message returns the localized external message for err.
// Internal failures never leak their details.
func Message(err error) string {
	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return MsgInternal
}
