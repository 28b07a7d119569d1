package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cvkit/internal/core/domain"
)

func TestCVCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0, len(cvCmd.Commands()))
	for _, cmd := range cvCmd.Commands() {
		names = append(names, cmd.Name())
	}

	assert.ElementsMatch(t, []string{"ingest", "list", "get", "delete", "analyse"}, names)
}

func TestCVGetCmd_RequiresExactlyOneArg(t *testing.T) {
	_, err := execute(t, "cv", "get")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

// ingestSample stores the sample CV and returns its ID.
func ingestSample(t *testing.T) string {
	t.Helper()
	path := writeTempFile(t, "jane.txt", sampleCV)
	out, err := execute(t, "cv", "ingest", path)
	require.NoError(t, err)
	require.Contains(t, out, "Stored")

	id := strings.TrimSpace(out[strings.LastIndex(out, "->")+2:])
	require.NotEmpty(t, id)
	return id
}

func TestCVIngestAndGet(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	id := ingestSample(t)

	out, err := execute(t, "cv", "get", id)
	require.NoError(t, err)
	assert.Contains(t, out, "CV: "+id)
	assert.Contains(t, out, "jane.txt")
	assert.Contains(t, out, "Jane Doe")
	assert.NotContains(t, out, "Go developer")

	out, err = execute(t, "cv", "get", "--text", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Go developer")
}

func TestCVGet_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	id := ingestSample(t)
	out, err := execute(t, "cv", "get", "--json", id)

	require.NoError(t, err)
	var cv domain.CV
	require.NoError(t, json.Unmarshal([]byte(out), &cv))
	assert.Equal(t, id, cv.ID)
	assert.Equal(t, "jane.doe@example.com", cv.BasicInfo.Email)
}

func TestCVGet_NotFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "cv", "get", "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCVIngest_PartialFailure(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	good := writeTempFile(t, "jane.txt", sampleCV)
	bad := writeTempFile(t, "photo.png", "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	out, err := execute(t, "cv", "ingest", good, bad)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed")
	assert.Contains(t, out, "Stored")
	assert.Contains(t, out, "Failed")
}

func TestCVList(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "cv", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No CVs stored.")

	id := ingestSample(t)

	out, err = execute(t, "cv", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "Total: 1 CVs")
}

func TestCVList_InvalidOffset(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "cv", "list", "--offset", "-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCVDelete(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	id := ingestSample(t)

	out, err := execute(t, "cv", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")

	_, err = execute(t, "cv", "delete", id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCVAnalyse_NoAnalyser(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	id := ingestSample(t)
	_, err := execute(t, "cv", "analyse", id)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAnalyserUnavailable)
	assert.Contains(t, err.Error(), "config set analysis.api_key")
}
