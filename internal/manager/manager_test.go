package manager

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"solrock/internal/config"
	"solrock/internal/console"
	"solrock/internal/models"
	"solrock/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// harness keeps one CSV data dir across steps; each step gets fresh
// scripted input.
type harness struct {
	t   *testing.T
	dir string
	out *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	return &harness{t: t, dir: t.TempDir(), out: &bytes.Buffer{}}
}

func (h *harness) with(lines ...string) *Set {
	h.t.Helper()
	b, err := store.NewBackend(context.Background(), config.Config{Storage: config.StorageCSV, DataDir: h.dir})
	require.NoError(h.t, err)
	h.out.Reset()
	con := console.New(strings.NewReader(strings.Join(lines, "\n")+"\n"), h.out)
	set, err := OpenAll(b, con, zaptest.NewLogger(h.t))
	require.NoError(h.t, err)
	return set
}

func (h *harness) file(name string) string {
	h.t.Helper()
	data, err := os.ReadFile(filepath.Join(h.dir, name+".csv"))
	require.NoError(h.t, err)
	return string(data)
}

func (h *harness) addAsh() int {
	h.t.Helper()
	id, err := h.with("Ash", "10", "Pallet Town", "555-0100").Participants.Add()
	require.NoError(h.t, err)
	return id
}

func TestOpenAllCreatesHeaders(t *testing.T) {
	h := newHarness(t)
	h.with()

	assert.Equal(t, "id_participante,nombre,edad,ciudad,telefono\n", h.file(ParticipantsTable))
	assert.Equal(t, "id_cuenta,id_participante,usuario,contrasena,fecha_creacion\n", h.file(AccountsTable))
	assert.Equal(t, "id_pokemon,id_entrenador,nombre,tipo,nivel,movimiento_principal\n", h.file(CreaturesTable))
}

func TestAshScenario(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, 1, h.addAsh())
	assert.Contains(t, h.out.String(), "Participante agregado con éxito. ID: 1")

	aid, err := h.with("1", "ash", "pikachu", "2024-01-01").Accounts.Add()
	require.NoError(t, err)
	assert.Equal(t, 1, aid)

	acc, err := h.with().Accounts.Get("1")
	require.NoError(t, err)
	assert.Equal(t, models.Account{ID: 1, ParticipantID: 1, Username: "ash", Password: "pikachu", CreatedDate: "2024-01-01"}, acc)
	assert.Contains(t, h.out.String(), "Contraseña: pikachu")

	before := h.file(CreaturesTable)
	_, err = h.with("99", "Pikachu", "Eléctrico", "5", "Impactrueno").Creatures.Add()
	require.Error(t, err)
	assert.Equal(t, KindReferenceNotFound, KindOf(err))
	assert.Contains(t, h.out.String(), "Error: El entrenador no existe.")
	assert.Equal(t, before, h.file(CreaturesTable))
}

func TestIDMonotonicity(t *testing.T) {
	h := newHarness(t)
	for want := 1; want <= 3; want++ {
		assert.Equal(t, want, h.addAsh())
	}

	require.NoError(t, h.with("SI").Participants.Delete("2"))
	assert.Equal(t, 4, h.addAsh())

	require.NoError(t, h.with("si").Participants.Delete("4"))
	assert.Equal(t, 4, h.addAsh(), "max row removed, id is reused")
}

func TestRoundTrip(t *testing.T) {
	h := newHarness(t)
	h.addAsh()

	cid, err := h.with("1", "Pikachu", "Eléctrico", "25", "Impactrueno").Creatures.Add()
	require.NoError(t, err)

	got, err := h.with().Creatures.Get("1")
	require.NoError(t, err)
	want := models.Creature{ID: cid, TrainerID: 1, Name: "Pikachu", Type: "Eléctrico", Level: 25, PrimaryMove: "Impactrueno"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("creature mismatch (-want +got):\n%s", diff)
	}

	p, err := h.with().Participants.Get("1")
	require.NoError(t, err)
	assert.Equal(t, models.Participant{ID: 1, Name: "Ash", Age: 10, City: "Pallet Town", Phone: "555-0100"}, p)
}

func TestUpdateWithEmptyInputKeepsRow(t *testing.T) {
	h := newHarness(t)
	h.addAsh()
	_, err := h.with("1", "ash", "pikachu", "2024-01-01").Accounts.Add()
	require.NoError(t, err)
	_, err = h.with("1", "Pikachu", "Eléctrico", "25", "Impactrueno").Creatures.Add()
	require.NoError(t, err)

	for name, update := range map[string]func() error{
		ParticipantsTable: func() error { return h.with("", "", "", "").Participants.Update("1") },
		AccountsTable:     func() error { return h.with("", "", "", "").Accounts.Update("1") },
		CreaturesTable:    func() error { return h.with("", "", "", "", "", "").Creatures.Update("1") },
	} {
		before := h.file(name)
		require.NoError(t, update(), name)
		assert.Equal(t, before, h.file(name), name)
	}
}

func TestUpdateChangesFields(t *testing.T) {
	h := newHarness(t)
	h.addAsh()
	h.addAsh()

	require.NoError(t, h.with("Misty", "12", "Cerulean", "").Participants.Update("2"))
	assert.Contains(t, h.out.String(), "Editando participante: Ash")
	assert.Contains(t, h.out.String(), "Participante actualizado con éxito.")

	list, err := h.with().Participants.ListAll()
	require.NoError(t, err)
	assert.Equal(t, []models.Participant{
		{ID: 1, Name: "Ash", Age: 10, City: "Pallet Town", Phone: "555-0100"},
		{ID: 2, Name: "Misty", Age: 12, City: "Cerulean", Phone: "555-0100"},
	}, list)
}

func TestAccountUpdateKeepsPasswordAndChecksOwner(t *testing.T) {
	h := newHarness(t)
	h.addAsh()
	h.addAsh()
	_, err := h.with("1", "ash", "pikachu", "2024-01-01").Accounts.Add()
	require.NoError(t, err)

	require.NoError(t, h.with("2", "red", "", "").Accounts.Update("1"))
	acc, err := h.with().Accounts.Get("1")
	require.NoError(t, err)
	assert.Equal(t, models.Account{ID: 1, ParticipantID: 2, Username: "red", Password: "pikachu", CreatedDate: "2024-01-01"}, acc)

	before := h.file(AccountsTable)
	err = h.with("7").Accounts.Update("1")
	assert.Equal(t, KindReferenceNotFound, KindOf(err))
	assert.Contains(t, h.out.String(), "Error: El participante no existe.")
	assert.Equal(t, before, h.file(AccountsTable))
}

func TestParticipantValidation(t *testing.T) {
	cases := []struct {
		name  string
		input []string
		field string
		msg   string
	}{
		{"empty name", []string{""}, "nombre", msgNameEmpty},
		{"age not a number", []string{"Ash", "diez"}, "edad", msgAgeNotInt},
		{"age too low", []string{"Ash", "0"}, "edad", msgAgeRange},
		{"age too high", []string{"Ash", "121"}, "edad", msgAgeRange},
		{"empty city", []string{"Ash", "10", " "}, "ciudad", msgCityEmpty},
		{"bad phone", []string{"Ash", "10", "Pallet Town", "555-CALL"}, "telefono", msgPhoneFormat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			_, err := h.with(tc.input...).Participants.Add()

			var e *Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, KindValidation, e.Kind)
			assert.Equal(t, tc.field, e.Field)
			assert.Contains(t, h.out.String(), "Error de validación: "+tc.msg)
			assert.Equal(t, strings.Join(models.ParticipantColumns, ",")+"\n", h.file(ParticipantsTable))
		})
	}
}

func TestCreatureValidation(t *testing.T) {
	h := newHarness(t)
	h.addAsh()

	_, err := h.with("1", "Pikachu", "Eléctrico", "cinco").Creatures.Add()
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Contains(t, h.out.String(), msgLevelNotInt)

	_, err = h.with("1", "Pikachu", "Eléctrico", "101").Creatures.Add()
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Contains(t, h.out.String(), msgLevelRange)

	_, err = h.with("uno").Creatures.Add()
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Contains(t, h.out.String(), msgTrainerNotInt)
}

func TestAccountRejections(t *testing.T) {
	h := newHarness(t)
	h.addAsh()

	_, err := h.with("x").Accounts.Add()
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = h.with("1", "ash", "pikachu", "01/01/2024").Accounts.Add()
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Contains(t, h.out.String(), msgDateFormat)

	_, err = h.with("1", "ash", "").Accounts.Add()
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Contains(t, h.out.String(), msgPasswordEmpty)

	list, err := h.with().Accounts.ListAll()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLookupErrors(t *testing.T) {
	h := newHarness(t)
	h.addAsh()

	_, err := h.with().Participants.Get("abc")
	assert.Equal(t, KindMalformedID, KindOf(err))
	assert.Contains(t, h.out.String(), "Error: El ID debe ser un número entero.")

	_, err = h.with().Participants.Get("42")
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Contains(t, h.out.String(), "Participante no encontrado.")

	assert.Equal(t, KindNotFound, KindOf(h.with().Accounts.Update("1")))
	assert.Equal(t, KindNotFound, KindOf(h.with().Creatures.Delete("1")))
	assert.Equal(t, KindMalformedID, KindOf(h.with().Creatures.Update("1.5")))
}

func TestDeleteConfirmation(t *testing.T) {
	h := newHarness(t)
	h.addAsh()
	before := h.file(ParticipantsTable)

	for _, answer := range []string{"no", "", "s", "YES"} {
		err := h.with(answer).Participants.Delete("1")
		assert.Equal(t, KindCancelled, KindOf(err), answer)
		assert.Contains(t, h.out.String(), "Eliminación cancelada.")
		assert.Equal(t, before, h.file(ParticipantsTable))
	}

	require.NoError(t, h.with("Si").Participants.Delete("1"))
	assert.Contains(t, h.out.String(), "¿Está seguro de eliminar al participante: Ash?")
	assert.Contains(t, h.out.String(), "Participante eliminado con éxito.")

	list, err := h.with().Participants.ListAll()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteKeepsOrphans(t *testing.T) {
	h := newHarness(t)
	h.addAsh()
	_, err := h.with("1", "ash", "pikachu", "2024-01-01").Accounts.Add()
	require.NoError(t, err)
	_, err = h.with("1", "Pikachu", "Eléctrico", "25", "Impactrueno").Creatures.Add()
	require.NoError(t, err)

	require.NoError(t, h.with("SI").Participants.Delete("1"))

	accounts, err := h.with().Accounts.ListAll()
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
	creatures, err := h.with().Creatures.ListAll()
	require.NoError(t, err)
	assert.Len(t, creatures, 1)
}

func TestListAllCompleteness(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 5; i++ {
		h.addAsh()
	}
	require.NoError(t, h.with("SI").Participants.Delete("3"))

	list, err := h.with().Participants.ListAll()
	require.NoError(t, err)
	var ids []int
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{1, 2, 4, 5}, ids)
}

type brokenSource struct{ err error }

func (b brokenSource) Get(string) (models.Participant, error) {
	return models.Participant{}, b.err
}

func TestReferenceLookupFailures(t *testing.T) {
	h := newHarness(t)
	accounts := h.with().Accounts.store

	cases := []struct {
		name string
		err  error
		kind Kind
	}{
		{"io", ioFailure(errors.New("disk gone")), KindIO},
		{"foreign", errors.New("disk gone"), KindIO},
		{"not found", &Error{Kind: KindNotFound, Msg: msgParticipantNotFound}, KindReferenceNotFound},
		{"malformed", &Error{Kind: KindMalformedID, Msg: msgMalformedID}, KindReferenceNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			con := console.New(strings.NewReader("1\n"), out)
			m := NewAccountManager(accounts, brokenSource{err: tc.err}, con, nil)

			_, err := m.Add()
			assert.Equal(t, tc.kind, KindOf(err))
			if tc.kind == KindIO {
				assert.Contains(t, out.String(), "Error al agregar cuenta: disk gone")
			}
		})
	}
}

func TestInputExhaustedIsIO(t *testing.T) {
	h := newHarness(t)
	_, err := h.with("Ash", "10").Participants.Add()
	assert.Equal(t, KindIO, KindOf(err))
	assert.Equal(t, strings.Join(models.ParticipantColumns, ",")+"\n", h.file(ParticipantsTable))
}
