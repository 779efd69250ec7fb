package manager

import (
	"fmt"

	"go.uber.org/zap"

	"solrock/internal/console"
	"solrock/internal/models"
	"solrock/internal/store"
	"solrock/internal/validate"
)

const ParticipantsTable = "participantes"

const (
	msgNameEmpty   = "El nombre no puede estar vacío."
	msgAgeNotInt   = "La edad debe ser un número entero."
	msgAgeRange    = "La edad debe estar entre 1 y 120 años."
	msgCityEmpty   = "La ciudad no puede estar vacía."
	msgPhoneFormat = "El formato del teléfono no es válido."

	msgParticipantNotFound = "Participante no encontrado."
)

var (
	participantAdd    = op{"add", "agregar participante"}
	participantGet    = op{"get", "consultar participante"}
	participantUpdate = op{"update", "editar participante"}
	participantDelete = op{"delete", "eliminar participante"}
)

// ParticipantManager manages people entering the tournament.
type ParticipantManager struct {
	entity
}

func NewParticipantManager(s *store.RecordStore, con *console.Console, log *zap.Logger) *ParticipantManager {
	return &ParticipantManager{entity: newEntity(s, con, log, "participant")}
}

func (m *ParticipantManager) Add() (int, error) {
	m.con.Println("\n--- AGREGAR PARTICIPANTE ---")

	name, err := m.prompt("Nombre: ", required("nombre", msgNameEmpty))
	if err != nil {
		return 0, m.fail(participantAdd, err)
	}
	var age int
	_, err = m.prompt("Edad: ", checkAge(&age))
	if err != nil {
		return 0, m.fail(participantAdd, err)
	}
	city, err := m.prompt("Ciudad: ", required("ciudad", msgCityEmpty))
	if err != nil {
		return 0, m.fail(participantAdd, err)
	}
	phone, err := m.prompt("Teléfono: ", checkPhone)
	if err != nil {
		return 0, m.fail(participantAdd, err)
	}

	p := models.Participant{ID: m.store.NextID(), Name: name, Age: age, City: city, Phone: phone}
	if err := m.store.Append(p.Row()); err != nil {
		return 0, m.fail(participantAdd, ioFailure(err))
	}
	m.con.Say("Participante agregado con éxito. ID: %d", p.ID)
	m.log.Info("participant added", zap.Int("id", p.ID))
	return p.ID, nil
}

// Get looks a participant up by its textual id and prints it.
func (m *ParticipantManager) Get(id string) (models.Participant, error) {
	m.con.Println("\n--- CONSULTAR PARTICIPANTE ---")

	_, _, row, err := m.find(id, msgParticipantNotFound)
	if err != nil {
		return models.Participant{}, m.fail(participantGet, err)
	}
	m.con.Say("\nID: %s", models.Field(row, 0))
	m.con.Say("Nombre: %s", models.Field(row, 1))
	m.con.Say("Edad: %s", models.Field(row, 2))
	m.con.Say("Ciudad: %s", models.Field(row, 3))
	m.con.Say("Teléfono: %s", models.Field(row, 4))
	return models.ParticipantFromRow(row), nil
}

// Update edits every field; blank input keeps the stored value.
func (m *ParticipantManager) Update(id string) error {
	m.con.Println("\n--- EDITAR PARTICIPANTE ---")

	pid, idx, row, err := m.find(id, msgParticipantNotFound)
	if err != nil {
		return m.fail(participantUpdate, err)
	}
	cur := models.Field
	m.con.Say("\nEditando participante: %s", cur(row, 1))

	name, err := m.promptKeep(fmt.Sprintf("Nuevo nombre (%s): ", cur(row, 1)), cur(row, 1), required("nombre", msgNameEmpty))
	if err != nil {
		return m.fail(participantUpdate, err)
	}
	var age int
	_, err = m.promptKeep(fmt.Sprintf("Nueva edad (%s): ", cur(row, 2)), cur(row, 2), checkAge(&age))
	if err != nil {
		return m.fail(participantUpdate, err)
	}
	city, err := m.promptKeep(fmt.Sprintf("Nueva ciudad (%s): ", cur(row, 3)), cur(row, 3), required("ciudad", msgCityEmpty))
	if err != nil {
		return m.fail(participantUpdate, err)
	}
	phone, err := m.promptKeep(fmt.Sprintf("Nuevo teléfono (%s): ", cur(row, 4)), cur(row, 4), checkPhone)
	if err != nil {
		return m.fail(participantUpdate, err)
	}

	p := models.Participant{ID: pid, Name: name, Age: age, City: city, Phone: phone}
	if err := m.store.ReplaceAt(idx, p.Row()); err != nil {
		return m.fail(participantUpdate, ioFailure(err))
	}
	m.con.Println("Participante actualizado con éxito.")
	m.log.Info("participant updated", zap.Int("id", pid))
	return nil
}

// Delete removes a participant after the operator types SI. Accounts and
// creatures pointing at it are left as they are.
func (m *ParticipantManager) Delete(id string) error {
	m.con.Println("\n--- ELIMINAR PARTICIPANTE ---")

	pid, _, row, err := m.find(id, msgParticipantNotFound)
	if err != nil {
		return m.fail(participantDelete, err)
	}
	if err := m.confirmDelete(fmt.Sprintf("¿Está seguro de eliminar al participante: %s?", models.Field(row, 1))); err != nil {
		return m.fail(participantDelete, err)
	}
	if err := m.remove(pid); err != nil {
		return m.fail(participantDelete, err)
	}
	m.con.Println("Participante eliminado con éxito.")
	m.log.Info("participant deleted", zap.Int("id", pid))
	return nil
}

func (m *ParticipantManager) ListAll() ([]models.Participant, error) {
	rows, err := m.store.ListAll()
	if err != nil {
		return nil, err
	}
	out := make([]models.Participant, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.ParticipantFromRow(r))
	}
	return out, nil
}

func checkAge(dst *int) func(string) *validate.ErrField {
	return func(v string) *validate.ErrField {
		age, ef := validate.IntRange("edad", v, 1, 120, msgAgeNotInt, msgAgeRange)
		*dst = age
		return ef
	}
}

func checkPhone(v string) *validate.ErrField {
	return validate.Match("telefono", v, validate.PhonePattern, msgPhoneFormat)
}
