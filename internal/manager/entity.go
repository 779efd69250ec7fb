package manager

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"solrock/internal/console"
	"solrock/internal/store"
	"solrock/internal/util"
	"solrock/internal/validate"
)

const (
	msgMalformedID = "Error: El ID debe ser un número entero."
	msgConfirm     = "Escriba 'SI' para confirmar: "
	msgCancelled   = "Eliminación cancelada."
)

// op names an operation for logs (name) and for I/O failure text (label).
type op struct {
	name  string
	label string
}

// entity carries what every manager shares: its record store, the console
// it talks through and its logger.
type entity struct {
	store *store.RecordStore
	con   *console.Console
	log   *zap.Logger
}

func newEntity(s *store.RecordStore, con *console.Console, log *zap.Logger, kind string) entity {
	if log == nil {
		log = zap.NewNop()
	}
	return entity{store: s, con: con, log: log.With(zap.String("entity", kind))}
}

// fail reports err to the operator and the log, and returns it.
func (e *entity) fail(o op, err *Error) error {
	switch err.Kind {
	case KindValidation:
		e.con.Say("Error de validación: %s", err.Msg)
	case KindIO:
		e.con.Say("Error al %s: %v", o.label, err.Err)
	default:
		e.con.Println(err.Msg)
	}
	fields := []zap.Field{zap.String("op", o.name), zap.Stringer("kind", err.Kind)}
	if err.Field != "" {
		fields = append(fields, zap.String("field", err.Field))
	}
	if err.Kind == KindIO {
		e.log.Error("operation failed", append(fields, zap.Error(err.Err))...)
	} else {
		e.log.Info("operation rejected", fields...)
	}
	return err
}

func (e *entity) ask(prompt string) (string, *Error) {
	v, err := e.con.Ask(prompt)
	if err != nil {
		return "", ioFailure(err)
	}
	return v, nil
}

// prompt asks for a value and runs check on it.
func (e *entity) prompt(label string, check func(string) *validate.ErrField) (string, *Error) {
	v, err := e.ask(label)
	if err != nil {
		return "", err
	}
	if check != nil {
		if ef := check(v); ef != nil {
			return "", invalid(ef)
		}
	}
	return v, nil
}

// promptKeep is prompt where blank input keeps current. The kept value is
// checked as well.
func (e *entity) promptKeep(label, current string, check func(string) *validate.ErrField) (string, *Error) {
	v, err := e.ask(label)
	if err != nil {
		return "", err
	}
	v = util.KeepIfEmpty(v, current)
	if check != nil {
		if ef := check(v); ef != nil {
			return "", invalid(ef)
		}
	}
	return v, nil
}

// find parses raw as an id and looks the row up.
func (e *entity) find(raw, notFound string) (int, int, []string, *Error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, -1, nil, &Error{Kind: KindMalformedID, Msg: msgMalformedID}
	}
	idx, row := e.store.FindByID(id)
	if row == nil {
		return id, -1, nil, &Error{Kind: KindNotFound, Msg: notFound}
	}
	return id, idx, row, nil
}

// confirmDelete shows question and requires the "SI" token.
func (e *entity) confirmDelete(question string) *Error {
	e.con.Println(question)
	ans, err := e.ask(msgConfirm)
	if err != nil {
		return err
	}
	if !util.IsAffirmative(ans) {
		return &Error{Kind: KindCancelled, Msg: msgCancelled}
	}
	return nil
}

func (e *entity) remove(id int) *Error {
	if _, err := e.store.DeleteByID(id); err != nil {
		return ioFailure(err)
	}
	return nil
}

func required(field, msg string) func(string) *validate.ErrField {
	return func(v string) *validate.ErrField {
		return validate.Required(field, v, msg)
	}
}

// reference parses a participant id typed by the operator.
func reference(field, raw, msg string) (int, *Error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, invalidMsg(field, msg)
	}
	return id, nil
}
