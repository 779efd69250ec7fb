package models

import (
	"strconv"
	"strings"
)

// Column layouts of the backing resources. Order is the on-disk order.
var (
	ParticipantColumns = []string{"id_participante", "nombre", "edad", "ciudad", "telefono"}
	AccountColumns     = []string{"id_cuenta", "id_participante", "usuario", "contrasena", "fecha_creacion"}
	CreatureColumns    = []string{"id_pokemon", "id_entrenador", "nombre", "tipo", "nivel", "movimiento_principal"}
)

type Participant struct {
	ID    int
	Name  string
	Age   int
	City  string
	Phone string
}

type Account struct {
	ID            int
	ParticipantID int
	Username      string
	Password      string // stored as plain text
	CreatedDate   string // YYYY-MM-DD
}

type Creature struct {
	ID          int
	TrainerID   int
	Name        string
	Type        string
	Level       int
	PrimaryMove string
}

func (p Participant) Row() []string {
	return []string{itoa(p.ID), p.Name, itoa(p.Age), p.City, p.Phone}
}

func ParticipantFromRow(row []string) Participant {
	return Participant{
		ID:    atoi(Field(row, 0)),
		Name:  Field(row, 1),
		Age:   atoi(Field(row, 2)),
		City:  Field(row, 3),
		Phone: Field(row, 4),
	}
}

func (a Account) Row() []string {
	return []string{itoa(a.ID), itoa(a.ParticipantID), a.Username, a.Password, a.CreatedDate}
}

func AccountFromRow(row []string) Account {
	return Account{
		ID:            atoi(Field(row, 0)),
		ParticipantID: atoi(Field(row, 1)),
		Username:      Field(row, 2),
		Password:      Field(row, 3),
		CreatedDate:   Field(row, 4),
	}
}

func (c Creature) Row() []string {
	return []string{itoa(c.ID), itoa(c.TrainerID), c.Name, c.Type, itoa(c.Level), c.PrimaryMove}
}

func CreatureFromRow(row []string) Creature {
	return Creature{
		ID:          atoi(Field(row, 0)),
		TrainerID:   atoi(Field(row, 1)),
		Name:        Field(row, 2),
		Type:        Field(row, 3),
		Level:       atoi(Field(row, 4)),
		PrimaryMove: Field(row, 5),
	}
}

// Field returns row[idx], or "" when the row is too short.
func Field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func itoa(v int) string { return strconv.Itoa(v) }

// atoi is lenient: unparsable cells read as 0.
func atoi(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}
