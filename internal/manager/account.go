package manager

import (
	"fmt"

	"go.uber.org/zap"

	"solrock/internal/console"
	"solrock/internal/models"
	"solrock/internal/store"
	"solrock/internal/validate"
)

const AccountsTable = "cuentas"

const (
	msgParticipantNotInt  = "El ID del participante debe ser un número entero."
	msgParticipantMissing = "Error: El participante no existe."
	msgUserEmpty          = "El usuario no puede estar vacío."
	msgPasswordEmpty      = "La contraseña no puede estar vacía."
	msgDateFormat         = "El formato de fecha debe ser YYYY-MM-DD."

	msgAccountNotFound = "Cuenta no encontrada."
)

var (
	accountAdd    = op{"add", "agregar cuenta"}
	accountGet    = op{"get", "consultar cuenta"}
	accountUpdate = op{"update", "editar cuenta"}
	accountDelete = op{"delete", "eliminar cuenta"}
)

// AccountManager manages login accounts. Each account must point at an
// existing participant when it is written.
type AccountManager struct {
	entity
	participants ParticipantSource
}

func NewAccountManager(s *store.RecordStore, participants ParticipantSource, con *console.Console, log *zap.Logger) *AccountManager {
	return &AccountManager{entity: newEntity(s, con, log, "account"), participants: participants}
}

func (m *AccountManager) Add() (int, error) {
	m.con.Println("\n--- AGREGAR CUENTA ---")

	raw, err := m.ask("ID del participante: ")
	if err != nil {
		return 0, m.fail(accountAdd, err)
	}
	pid, err := m.owner(raw)
	if err != nil {
		return 0, m.fail(accountAdd, err)
	}

	user, err := m.prompt("Usuario: ", required("usuario", msgUserEmpty))
	if err != nil {
		return 0, m.fail(accountAdd, err)
	}
	pass, err := m.prompt("Contraseña: ", required("contrasena", msgPasswordEmpty))
	if err != nil {
		return 0, m.fail(accountAdd, err)
	}
	date, err := m.prompt("Fecha de creación (YYYY-MM-DD): ", checkDate)
	if err != nil {
		return 0, m.fail(accountAdd, err)
	}

	a := models.Account{ID: m.store.NextID(), ParticipantID: pid, Username: user, Password: pass, CreatedDate: date}
	if err := m.store.Append(a.Row()); err != nil {
		return 0, m.fail(accountAdd, ioFailure(err))
	}
	m.con.Say("Cuenta agregada con éxito. ID: %d", a.ID)
	m.log.Info("account added", zap.Int("id", a.ID), zap.Int("participant_id", pid))
	return a.ID, nil
}

func (m *AccountManager) Get(id string) (models.Account, error) {
	m.con.Println("\n--- CONSULTAR CUENTA ---")

	_, _, row, err := m.find(id, msgAccountNotFound)
	if err != nil {
		return models.Account{}, m.fail(accountGet, err)
	}
	m.con.Say("\nID Cuenta: %s", models.Field(row, 0))
	m.con.Say("ID Participante: %s", models.Field(row, 1))
	m.con.Say("Usuario: %s", models.Field(row, 2))
	m.con.Say("Contraseña: %s", models.Field(row, 3))
	m.con.Say("Fecha de creación: %s", models.Field(row, 4))
	return models.AccountFromRow(row), nil
}

// Update re-resolves the owning participant before touching other fields.
// A blank password keeps the stored one.
func (m *AccountManager) Update(id string) error {
	m.con.Println("\n--- EDITAR CUENTA ---")

	aid, idx, row, err := m.find(id, msgAccountNotFound)
	if err != nil {
		return m.fail(accountUpdate, err)
	}
	cur := models.Field

	raw, err := m.promptKeep(fmt.Sprintf("Nuevo ID de participante (%s): ", cur(row, 1)), cur(row, 1), nil)
	if err != nil {
		return m.fail(accountUpdate, err)
	}
	pid, err := m.owner(raw)
	if err != nil {
		return m.fail(accountUpdate, err)
	}

	m.con.Say("\nEditando cuenta: %s", cur(row, 2))
	user, err := m.promptKeep(fmt.Sprintf("Nuevo usuario (%s): ", cur(row, 2)), cur(row, 2), required("usuario", msgUserEmpty))
	if err != nil {
		return m.fail(accountUpdate, err)
	}
	pass, err := m.promptKeep("Nueva contraseña (dejar vacío para mantener la actual): ", cur(row, 3), nil)
	if err != nil {
		return m.fail(accountUpdate, err)
	}
	date, err := m.promptKeep(fmt.Sprintf("Nueva fecha (%s): ", cur(row, 4)), cur(row, 4), checkDate)
	if err != nil {
		return m.fail(accountUpdate, err)
	}

	a := models.Account{ID: aid, ParticipantID: pid, Username: user, Password: pass, CreatedDate: date}
	if err := m.store.ReplaceAt(idx, a.Row()); err != nil {
		return m.fail(accountUpdate, ioFailure(err))
	}
	m.con.Println("Cuenta actualizada con éxito.")
	m.log.Info("account updated", zap.Int("id", aid))
	return nil
}

func (m *AccountManager) Delete(id string) error {
	m.con.Println("\n--- ELIMINAR CUENTA ---")

	aid, _, row, err := m.find(id, msgAccountNotFound)
	if err != nil {
		return m.fail(accountDelete, err)
	}
	if err := m.confirmDelete(fmt.Sprintf("¿Está seguro de eliminar la cuenta: %s?", models.Field(row, 2))); err != nil {
		return m.fail(accountDelete, err)
	}
	if err := m.remove(aid); err != nil {
		return m.fail(accountDelete, err)
	}
	m.con.Println("Cuenta eliminada con éxito.")
	m.log.Info("account deleted", zap.Int("id", aid))
	return nil
}

func (m *AccountManager) ListAll() ([]models.Account, error) {
	rows, err := m.store.ListAll()
	if err != nil {
		return nil, err
	}
	out := make([]models.Account, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.AccountFromRow(r))
	}
	return out, nil
}

func (m *AccountManager) owner(raw string) (int, *Error) {
	return resolve(m.participants, "id_participante", raw, msgParticipantNotInt, msgParticipantMissing)
}

func checkDate(v string) *validate.ErrField {
	return validate.Match("fecha_creacion", v, validate.DatePattern, msgDateFormat)
}
