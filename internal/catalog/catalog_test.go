package catalog

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDataset = `Банк,Ameriabank,Ardshinbank,TBC,Kaspi
Страна,Армения,Армения,Грузия,Казахстан
Сроки изготовления,5 дней,7 дней,3 дня,10 дней
Цена,300$,250$,400$,
Документы,Паспорт,Паспорт,Паспорт + ВНЖ,Паспорт
Платёжная система,Visa,MasterCard,Visa,MasterCard
SWIFT,Да,,Да,Да
`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadSample(t *testing.T) *Catalog {
	t.Helper()

	c := New(testLogger())
	require.NoError(t, c.Load(strings.NewReader(sampleDataset)))
	return c
}

func TestCatalog_Load(t *testing.T) {
	c := loadSample(t)

	assert.Equal(t, 4, c.Size())
	assert.False(t, c.Empty())
	assert.Equal(t, []string{"Армения", "Грузия", "Казахстан"}, c.Countries())
	assert.Equal(t, []string{"Ameriabank", "Ardshinbank"}, c.Banks("Армения"))
	assert.Equal(t, []string{"TBC"}, c.Banks("Грузия"))
	assert.Empty(t, c.Banks("Франция"))
}

func TestCatalog_Find(t *testing.T) {
	c := loadSample(t)

	off, ok := c.Find("Грузия", "TBC")
	require.True(t, ok)
	assert.Equal(t, "TBC", off.Bank)
	assert.Equal(t, "Грузия", off.Country)
	assert.Equal(t, "400$", off.Attributes["Цена"])

	_, ok = c.Find("Грузия", "Kaspi")
	assert.False(t, ok)

	_, ok = c.Find("Франция", "TBC")
	assert.False(t, ok)
}

func TestCatalog_LoadSkipsIncompleteColumns(t *testing.T) {
	dataset := `Банк,Ameriabank,,TBC
Страна,Армения,Грузия,
Цена,300$,100$,400$
`
	c := New(testLogger())
	require.NoError(t, c.Load(strings.NewReader(dataset)))

	// Columns missing a bank or a country are not offerings.
	assert.Equal(t, 1, c.Size())
	assert.Equal(t, []string{"Армения"}, c.Countries())
}

func TestCatalog_LoadShortDatasetIsEmpty(t *testing.T) {
	c := New(testLogger())
	require.NoError(t, c.Load(strings.NewReader("Банк,Ameriabank\nСтрана,Армения\n")))

	assert.True(t, c.Empty())
	assert.Empty(t, c.Countries())
}

func TestCatalog_LoadReplacesPreviousSnapshot(t *testing.T) {
	c := loadSample(t)
	require.Equal(t, 4, c.Size())

	smaller := `Банк,TBC
Страна,Грузия
Цена,500$
`
	require.NoError(t, c.Load(strings.NewReader(smaller)))

	assert.Equal(t, 1, c.Size())
	assert.Equal(t, []string{"Грузия"}, c.Countries())

	off, ok := c.Find("Грузия", "TBC")
	require.True(t, ok)
	assert.Equal(t, "500$", off.Attributes["Цена"])
}

func TestCatalog_LoadIsIdempotent(t *testing.T) {
	first := loadSample(t)
	second := loadSample(t)

	assert.Equal(t, first.Size(), second.Size())
	assert.Equal(t, first.Countries(), second.Countries())
	for _, country := range first.Countries() {
		assert.Equal(t, first.Banks(country), second.Banks(country))
	}
}

func TestCatalog_LoadFileMissingDegradesToEmpty(t *testing.T) {
	c := loadSample(t)
	require.False(t, c.Empty())

	err := c.LoadFile("testdata/does-not-exist.csv")
	assert.Error(t, err)
	assert.True(t, c.Empty())
}

func TestOffering_Details(t *testing.T) {
	c := loadSample(t)

	off, ok := c.Find("Армения", "Ardshinbank")
	require.True(t, ok)

	details := off.Details()
	assert.Contains(t, details, "Страна: Армения")
	assert.Contains(t, details, "Банк: Ardshinbank")
	assert.Contains(t, details, "Сроки: 7 дней")
	assert.Contains(t, details, "Цена: 250$")
	assert.Contains(t, details, "ПС: MasterCard")
	// Empty attribute values are omitted entirely.
	assert.NotContains(t, details, "SWIFT")
}

func TestOffering_DetailsOrder(t *testing.T) {
	c := loadSample(t)

	off, ok := c.Find("Грузия", "TBC")
	require.True(t, ok)

	lines := strings.Split(off.Details(), "\n")
	assert.Equal(t, []string{
		"Страна: Грузия",
		"Банк: TBC",
		"Сроки: 3 дня",
		"Цена: 400$",
		"Документы: Паспорт + ВНЖ",
		"ПС: Visa",
		"SWIFT: Да",
	}, lines)
}
