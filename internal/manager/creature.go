package manager

import (
	"fmt"

	"go.uber.org/zap"

	"solrock/internal/console"
	"solrock/internal/models"
	"solrock/internal/store"
	"solrock/internal/validate"
)

const CreaturesTable = "pokemones"

const (
	msgTrainerNotInt  = "El ID del entrenador debe ser un número entero."
	msgTrainerMissing = "Error: El entrenador no existe."
	msgTypeEmpty      = "El tipo no puede estar vacío."
	msgLevelNotInt    = "El nivel debe ser un número entero."
	msgLevelRange     = "El nivel debe estar entre 1 y 100."
	msgMoveEmpty      = "El movimiento principal no puede estar vacío."

	msgCreatureNotFound = "Pokémon no encontrado."
)

var (
	creatureAdd    = op{"add", "agregar pokémon"}
	creatureGet    = op{"get", "consultar pokémon"}
	creatureUpdate = op{"update", "editar pokémon"}
	creatureDelete = op{"delete", "eliminar pokémon"}
)

// CreatureManager manages the creatures each trainer brings.
type CreatureManager struct {
	entity
	trainers ParticipantSource
}

func NewCreatureManager(s *store.RecordStore, trainers ParticipantSource, con *console.Console, log *zap.Logger) *CreatureManager {
	return &CreatureManager{entity: newEntity(s, con, log, "creature"), trainers: trainers}
}

func (m *CreatureManager) Add() (int, error) {
	m.con.Println("\n--- AGREGAR POKÉMON ---")

	raw, err := m.ask("ID del entrenador (participante): ")
	if err != nil {
		return 0, m.fail(creatureAdd, err)
	}
	tid, err := m.trainer(raw)
	if err != nil {
		return 0, m.fail(creatureAdd, err)
	}

	name, err := m.prompt("Nombre del Pokémon: ", required("nombre", msgNameEmpty))
	if err != nil {
		return 0, m.fail(creatureAdd, err)
	}
	kind, err := m.prompt("Tipo: ", required("tipo", msgTypeEmpty))
	if err != nil {
		return 0, m.fail(creatureAdd, err)
	}
	var level int
	if _, err = m.prompt("Nivel: ", checkLevel(&level)); err != nil {
		return 0, m.fail(creatureAdd, err)
	}
	move, err := m.prompt("Movimiento principal: ", required("movimiento_principal", msgMoveEmpty))
	if err != nil {
		return 0, m.fail(creatureAdd, err)
	}

	c := models.Creature{ID: m.store.NextID(), TrainerID: tid, Name: name, Type: kind, Level: level, PrimaryMove: move}
	if err := m.store.Append(c.Row()); err != nil {
		return 0, m.fail(creatureAdd, ioFailure(err))
	}
	m.con.Say("Pokémon agregado con éxito. ID: %d", c.ID)
	m.log.Info("creature added", zap.Int("id", c.ID), zap.Int("trainer_id", tid))
	return c.ID, nil
}

func (m *CreatureManager) Get(id string) (models.Creature, error) {
	m.con.Println("\n--- CONSULTAR POKÉMON ---")

	_, _, row, err := m.find(id, msgCreatureNotFound)
	if err != nil {
		return models.Creature{}, m.fail(creatureGet, err)
	}
	m.con.Say("\nID Pokémon: %s", models.Field(row, 0))
	m.con.Say("ID Entrenador: %s", models.Field(row, 1))
	m.con.Say("Nombre: %s", models.Field(row, 2))
	m.con.Say("Tipo: %s", models.Field(row, 3))
	m.con.Say("Nivel: %s", models.Field(row, 4))
	m.con.Say("Movimiento principal: %s", models.Field(row, 5))
	return models.CreatureFromRow(row), nil
}

func (m *CreatureManager) Update(id string) error {
	m.con.Println("\n--- EDITAR POKÉMON ---")

	cid, idx, row, err := m.find(id, msgCreatureNotFound)
	if err != nil {
		return m.fail(creatureUpdate, err)
	}
	cur := models.Field

	raw, err := m.promptKeep(fmt.Sprintf("Nuevo ID de entrenador (%s): ", cur(row, 1)), cur(row, 1), nil)
	if err != nil {
		return m.fail(creatureUpdate, err)
	}
	tid, err := m.trainer(raw)
	if err != nil {
		return m.fail(creatureUpdate, err)
	}

	m.con.Say("\nEditando pokémon: %s", cur(row, 2))
	name, err := m.promptKeep(fmt.Sprintf("Nuevo nombre (%s): ", cur(row, 2)), cur(row, 2), required("nombre", msgNameEmpty))
	if err != nil {
		return m.fail(creatureUpdate, err)
	}
	kind, err := m.promptKeep(fmt.Sprintf("Nuevo tipo (%s): ", cur(row, 3)), cur(row, 3), required("tipo", msgTypeEmpty))
	if err != nil {
		return m.fail(creatureUpdate, err)
	}
	var level int
	if _, err = m.promptKeep(fmt.Sprintf("Nuevo nivel (%s): ", cur(row, 4)), cur(row, 4), checkLevel(&level)); err != nil {
		return m.fail(creatureUpdate, err)
	}
	move, err := m.promptKeep(fmt.Sprintf("Nuevo movimiento principal (%s): ", cur(row, 5)), cur(row, 5), required("movimiento_principal", msgMoveEmpty))
	if err != nil {
		return m.fail(creatureUpdate, err)
	}

	c := models.Creature{ID: cid, TrainerID: tid, Name: name, Type: kind, Level: level, PrimaryMove: move}
	if err := m.store.ReplaceAt(idx, c.Row()); err != nil {
		return m.fail(creatureUpdate, ioFailure(err))
	}
	m.con.Println("Pokémon actualizado con éxito.")
	m.log.Info("creature updated", zap.Int("id", cid))
	return nil
}

func (m *CreatureManager) Delete(id string) error {
	m.con.Println("\n--- ELIMINAR POKÉMON ---")

	cid, _, row, err := m.find(id, msgCreatureNotFound)
	if err != nil {
		return m.fail(creatureDelete, err)
	}
	if err := m.confirmDelete(fmt.Sprintf("¿Está seguro de eliminar el pokémon: %s?", models.Field(row, 2))); err != nil {
		return m.fail(creatureDelete, err)
	}
	if err := m.remove(cid); err != nil {
		return m.fail(creatureDelete, err)
	}
	m.con.Println("Pokémon eliminado con éxito.")
	m.log.Info("creature deleted", zap.Int("id", cid))
	return nil
}

func (m *CreatureManager) ListAll() ([]models.Creature, error) {
	rows, err := m.store.ListAll()
	if err != nil {
		return nil, err
	}
	out := make([]models.Creature, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.CreatureFromRow(r))
	}
	return out, nil
}

func (m *CreatureManager) trainer(raw string) (int, *Error) {
	return resolve(m.trainers, "id_entrenador", raw, msgTrainerNotInt, msgTrainerMissing)
}

func checkLevel(dst *int) func(string) *validate.ErrField {
	return func(v string) *validate.ErrField {
		level, ef := validate.IntRange("nivel", v, 1, 100, msgLevelNotInt, msgLevelRange)
		*dst = level
		return ef
	}
}
