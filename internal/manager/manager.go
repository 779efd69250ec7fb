// Package manager holds the per-entity CRUD workflows the menu drives.
// Every operation talks to the operator through a console, persists through
// a store.RecordStore and reports failures as *Error.
package manager

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"solrock/internal/console"
	"solrock/internal/models"
	"solrock/internal/store"
)

// Manager is the interactive CRUD surface of one entity kind.
type Manager[T any] interface {
	Add() (int, error)
	Get(id string) (T, error)
	Update(id string) error
	Delete(id string) error
	ListAll() ([]T, error)
}

var (
	_ Manager[models.Participant] = (*ParticipantManager)(nil)
	_ Manager[models.Account]     = (*AccountManager)(nil)
	_ Manager[models.Creature]    = (*CreatureManager)(nil)
)

// ParticipantSource resolves participant ids for accounts and creatures.
type ParticipantSource interface {
	Get(id string) (models.Participant, error)
}

// Set is the three managers wired to one backend and console.
type Set struct {
	Participants *ParticipantManager
	Accounts     *AccountManager
	Creatures    *CreatureManager
}

// OpenAll initializes the three tables on b and builds their managers.
func OpenAll(b *store.Backend, con *console.Console, log *zap.Logger) (*Set, error) {
	if log == nil {
		log = zap.NewNop()
	}
	open := func(name string, header []string) (*store.RecordStore, error) {
		s, err := store.New(b.Table(name), header, log)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		return s, nil
	}

	ps, err := open(ParticipantsTable, models.ParticipantColumns)
	if err != nil {
		return nil, err
	}
	as, err := open(AccountsTable, models.AccountColumns)
	if err != nil {
		return nil, err
	}
	cs, err := open(CreaturesTable, models.CreatureColumns)
	if err != nil {
		return nil, err
	}

	participants := NewParticipantManager(ps, con, log)
	return &Set{
		Participants: participants,
		Accounts:     NewAccountManager(as, participants, con, log),
		Creatures:    NewCreatureManager(cs, participants, con, log),
	}, nil
}

// resolve checks that raw names an existing participant. I/O failures and
// errors from outside this package are reported as I/O; any other miss
// becomes missingMsg.
func resolve(src ParticipantSource, field, raw, notIntMsg, missingMsg string) (int, *Error) {
	id, e := reference(field, raw, notIntMsg)
	if e != nil {
		return 0, e
	}
	if _, err := src.Get(raw); err != nil {
		var e *Error
		if errors.As(err, &e) && e.Kind == KindIO {
			return 0, e
		}
		if e == nil {
			return 0, ioFailure(err)
		}
		return 0, &Error{Kind: KindReferenceNotFound, Msg: missingMsg, Field: field}
	}
	return id, nil
}
