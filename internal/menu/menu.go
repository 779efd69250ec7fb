// Package menu is the numbered text menu that routes operator choices to
// the entity managers.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"solrock/internal/console"
	"solrock/internal/manager"
	"solrock/internal/models"
)

const (
	msgNotANumber = "Error: Debe ingresar un número entero."
	msgBadOption  = "Opción no válida. Intente nuevamente."
	msgChoose     = "Seleccione una opción: "
	msgBye        = "¡Hasta pronto!"
)

// Menu owns the main loop.
type Menu struct {
	con   *console.Console
	set   *manager.Set
	log   *zap.Logger
	title lipgloss.Style

	sections []runner
}

// runner is one entity submenu.
type runner interface {
	label() string
	run(ctx context.Context, m *Menu) (quit bool)
	list(m *Menu) error
	kind() string
}

func New(con *console.Console, set *manager.Set, log *zap.Logger) *Menu {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Menu{
		con:   con,
		set:   set,
		log:   log.Named("menu"),
		title: lipgloss.NewRenderer(con.Writer()).NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
	}
	m.sections = []runner{
		&section[models.Participant]{
			name:      "participants",
			menuLabel: "Gestionar Participantes",
			heading:   "GESTIÓN DE PARTICIPANTES",
			options:   [5]string{"Agregar participante", "Consultar participante", "Editar participante", "Eliminar participante", "Listar todos los participantes"},
			idPrompt:  "ID del participante a %s: ",
			listTitle: "LISTA DE PARTICIPANTES",
			empty:     "No hay participantes registrados.",
			mgr:       set.Participants,
			line: func(p models.Participant) string {
				return fmt.Sprintf("ID: %d, Nombre: %s, Edad: %d, Ciudad: %s", p.ID, p.Name, p.Age, p.City)
			},
		},
		&section[models.Account]{
			name:      "accounts",
			menuLabel: "Gestionar Cuentas",
			heading:   "GESTIÓN DE CUENTAS",
			options:   [5]string{"Agregar cuenta", "Consultar cuenta", "Editar cuenta", "Eliminar cuenta", "Listar todas las cuentas"},
			idPrompt:  "ID de la cuenta a %s: ",
			listTitle: "LISTA DE CUENTAS",
			empty:     "No hay cuentas registradas.",
			mgr:       set.Accounts,
			line: func(a models.Account) string {
				return fmt.Sprintf("ID: %d, ID Participante: %d, Usuario: %s", a.ID, a.ParticipantID, a.Username)
			},
		},
		&section[models.Creature]{
			name:      "creatures",
			menuLabel: "Gestionar Pokémones",
			heading:   "GESTIÓN DE POKÉMONES",
			options:   [5]string{"Agregar pokémon", "Consultar pokémon", "Editar pokémon", "Eliminar pokémon", "Listar todos los pokémones"},
			idPrompt:  "ID del pokémon a %s: ",
			listTitle: "LISTA DE POKÉMONES",
			empty:     "No hay pokémones registrados.",
			mgr:       set.Creatures,
			line: func(c models.Creature) string {
				return fmt.Sprintf("ID: %d, Entrenador: %d, Nombre: %s, Tipo: %s, Nivel: %d", c.ID, c.TrainerID, c.Name, c.Type, c.Level)
			},
		},
	}
	return m
}

// Run shows the main menu until the operator exits, input ends or ctx is
// cancelled. It only returns an error for cancellation.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.heading("\n=== SISTEMA SOLROCK BATTLE ASSOCIATION ===")
		for i, s := range m.sections {
			m.con.Say("%d. %s", i+1, s.label())
		}
		m.con.Say("%d. Salir", len(m.sections)+1)

		opt, ok, eof := m.choose()
		if eof {
			m.log.Info("input closed")
			return nil
		}
		if !ok {
			continue
		}
		switch {
		case opt >= 1 && opt <= len(m.sections):
			if quit := m.sections[opt-1].run(ctx, m); quit {
				m.log.Info("input closed")
				return nil
			}
		case opt == len(m.sections)+1:
			m.con.Println(msgBye)
			return nil
		default:
			m.con.Println(msgBadOption)
		}
	}
}

// List prints the listing of one entity kind: participants, accounts or
// creatures.
func (m *Menu) List(kind string) error {
	for _, s := range m.sections {
		if s.kind() == kind {
			return s.list(m)
		}
	}
	return fmt.Errorf("unknown entity %q", kind)
}

// Kinds returns the names List accepts.
func (m *Menu) Kinds() []string {
	out := make([]string, 0, len(m.sections))
	for _, s := range m.sections {
		out = append(out, s.kind())
	}
	return out
}

func (m *Menu) heading(s string) {
	// leading newlines stay unstyled
	lead := 0
	for lead < len(s) && s[lead] == '\n' {
		lead++
	}
	m.con.Println(s[:lead] + m.title.Render(s[lead:]))
}

// choose reads an option. ok is false when the input was not an integer,
// in which case the error line has already been printed.
func (m *Menu) choose() (opt int, ok bool, eof bool) {
	raw, err := m.con.Ask(msgChoose)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			m.log.Error("read option", zap.Error(err))
		}
		return 0, false, true
	}
	opt, err = strconv.Atoi(raw)
	if err != nil {
		m.con.Println(msgNotANumber)
		return 0, false, false
	}
	return opt, true, false
}

type section[T any] struct {
	name      string
	menuLabel string
	heading   string
	options   [5]string
	idPrompt  string
	listTitle string
	empty     string
	mgr       manager.Manager[T]
	line      func(T) string
}

func (s *section[T]) label() string { return s.menuLabel }
func (s *section[T]) kind() string  { return s.name }

func (s *section[T]) run(ctx context.Context, m *Menu) bool {
	for {
		if ctx.Err() != nil {
			return false
		}
		m.heading("\n--- " + s.heading + " ---")
		for i, o := range s.options {
			m.con.Say("%d. %s", i+1, o)
		}
		m.con.Say("%d. Volver al menú principal", len(s.options)+1)

		opt, ok, eof := m.choose()
		if eof {
			return true
		}
		if !ok {
			continue
		}

		var err error
		switch opt {
		case 1:
			_, err = s.mgr.Add()
		case 2, 3, 4:
			verb := [...]string{"consultar", "editar", "eliminar"}[opt-2]
			id, rerr := m.con.Ask(fmt.Sprintf(s.idPrompt, verb))
			if rerr != nil {
				return true
			}
			switch opt {
			case 2:
				_, err = s.mgr.Get(id)
			case 3:
				err = s.mgr.Update(id)
			case 4:
				err = s.mgr.Delete(id)
			}
		case 5:
			err = s.list(m)
		case 6:
			return false
		default:
			m.con.Println(msgBadOption)
			continue
		}
		if err != nil {
			m.log.Debug("operation had no effect", zap.String("section", s.name), zap.Int("option", opt), zap.Error(err))
		}
	}
}

func (s *section[T]) list(m *Menu) error {
	m.heading("\n--- " + s.listTitle + " ---")
	items, err := s.mgr.ListAll()
	if err != nil {
		m.con.Say("Error al listar: %v", err)
		m.log.Error("list failed", zap.String("section", s.name), zap.Error(err))
		return err
	}
	if len(items) == 0 {
		m.con.Println(s.empty)
		return nil
	}
	for _, it := range items {
		m.con.Println(s.line(it))
	}
	return nil
}
