package csvfile

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/ufo-sightings-etl/internal/domain"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sightings.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReader_ExtractAll(t *testing.T) {
	csv := "datetime,city,state,country,shape,duration (seconds),duration (hours/min),comments,date posted,latitude,longitude\n" +
		"10/10/1949 20:30,san marcos,tx,us,cylinder,2700,45 minutes,This event took place&#44 early fall,4/27/2004,29.8830556,-97.9411111\n" +
		"1/1/2000 20:00,austin,tx,us,circle,120,2 minutes,bright circle,2/5/2000,30.2672,-97.7431\n"

	reader := NewReader(writeTempCSV(t, csv), nil, slog.Default())
	rows, err := reader.ExtractAll(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "10/10/1949 20:30", rows[0][domain.FieldDatetime])
	assert.Equal(t, "2700", rows[0][domain.FieldDurationSeconds])
	assert.Equal(t, "This event took place&#44 early fall", rows[0][domain.FieldDescription])
	assert.Equal(t, "4/27/2004", rows[0][domain.FieldDatePosted])
	assert.Equal(t, "-97.9411111", rows[0][domain.FieldLongitude])
}

func TestReader_ShortRowsLeaveFieldsEmpty(t *testing.T) {
	csv := "datetime,city,latitude,longitude\n" +
		"1/1/2000 20:00,austin\n"

	reader := NewReader(writeTempCSV(t, csv), nil, slog.Default())
	rows, err := reader.ExtractAll(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0][domain.FieldLatitude])
}

func TestReader_MissingFile(t *testing.T) {
	reader := NewReader(filepath.Join(t.TempDir(), "absent.csv"), nil, slog.Default())
	_, err := reader.ExtractAll(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReader_IncompatibleSchema(t *testing.T) {
	csv := "city,shape,comments\naustin,circle,a circle\n"

	reader := NewReader(writeTempCSV(t, csv), nil, slog.Default())
	_, err := reader.ExtractAll(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchema)
}

func TestReader_ExtraAliases(t *testing.T) {
	csv := "Report Date,Sighting Notes,latitude,longitude\n" +
		"1/1/2000 20:00,a bright light,30.2,-97.7\n"

	aliases := map[string]string{
		"report date":    domain.FieldDatetime,
		"sighting notes": domain.FieldDescription,
	}

	reader := NewReader(writeTempCSV(t, csv), aliases, slog.Default())
	rows, err := reader.ExtractAll(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1/1/2000 20:00", rows[0][domain.FieldDatetime])
	assert.Equal(t, "a bright light", rows[0][domain.FieldDescription])
}

func TestReader_CancelledContext(t *testing.T) {
	csv := "datetime,latitude,longitude\n1/1/2000 20:00,30.2,-97.7\n"
	reader := NewReader(writeTempCSV(t, csv), nil, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := reader.ExtractAll(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
