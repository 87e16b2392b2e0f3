package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gradebook/internal/testutil"
)

const sampleData = "S001,Alice,Math,85.0\nS002,Bob,Physics,92.5\nS003,Carol,Chemistry,78.0\n"

// goldenDir is resolved at package init, before any test changes directory.
var goldenDir = func() string {
	dir, err := filepath.Abs(filepath.Join("testdata", "golden"))
	if err != nil {
		panic(err)
	}
	return dir
}()

func newGolden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir(goldenDir),
		goldie.WithNameSuffix(".golden"),
	)
}

// decodeData unmarshals the data field of a JSON CLIResponse into v.
func decodeData(t *testing.T, out string, v any) CLIResponse {
	t.Helper()
	var resp struct {
		CLIResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	if v != nil {
		require.NoError(t, json.Unmarshal(resp.Data, v))
	}
	return resp.CLIResponse
}

func TestList_Text(t *testing.T) {
	isolateConfig(t)
	writeFile(t, "students.txt", sampleData)

	out, _, err := executeRoot(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "=== Student List ===")
	assert.Contains(t, out, "S002       Bob             Physics         92.5")
	assert.Contains(t, out, strings.Repeat("=", 50))
}

func TestList_JSONGolden(t *testing.T) {
	isolateConfig(t)
	writeFile(t, "students.txt", sampleData)

	out, _, err := executeRoot(t, "", "--format", "json", "list")
	require.NoError(t, err)
	newGolden(t).Assert(t, "list_json", []byte(out))
}

func TestList_CreatesMissingFile(t *testing.T) {
	isolateConfig(t)

	out, _, err := executeRoot(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No student data available.")

	_, statErr := os.Stat("students.txt")
	assert.NoError(t, statErr)
}

func TestList_WarnsOnMalformedLines(t *testing.T) {
	isolateConfig(t)
	writeFile(t, "students.txt", "S001,Alice,Math,85.0\nbroken line\n")

	out, errOut, err := executeRoot(t, "", "--format", "json", "list")
	require.NoError(t, err)
	assert.Contains(t, errOut, "warning:")
	assert.Contains(t, errOut, "line 2")

	var list RecordList
	resp := decodeData(t, out, &list)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, list.Count)
}

func TestAdd_SavesRecord(t *testing.T) {
	isolateConfig(t)
	writeFile(t, "students.txt", sampleData)

	out, _, err := executeRoot(t, "", "add", "S004", "Dan", "History", " 60 ")
	require.NoError(t, err)
	assert.Contains(t, out, "Student Dan (S004) added")
	assert.Equal(t, sampleData+"S004,Dan,History,60.0\n", readFile(t, "students.txt"))
}

func TestAdd_Duplicate(t *testing.T) {
	isolateConfig(t)
	writeFile(t, "students.txt", sampleData)

	out, _, err := executeRoot(t, "", "--format", "json", "add", "S001", "Other", "Art", "50")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp := decodeData(t, out, nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "DUPLICATE_ID", resp.Error.Code)
	assert.Equal(t, sampleData, readFile(t, "students.txt"), "file untouched")
}

func TestAdd_InvalidScore(t *testing.T) {
	isolateConfig(t)
	writeFile(t, "students.txt", sampleData)

	out, _, err := executeRoot(t, "", "add", "S004", "Dan", "History", "sixty")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "INVALID_SCORE")
	assert.Equal(t, sampleData, readFile(t, "students.txt"))
}

func TestAdd_GenerateID(t *testing.T) {
	isolateConfig(t)

	out, _, err := executeRoot(t, "", "--format", "json", "add", "--generate-id", "Eve", "Biology", "88")
	require.NoError(t, err)

	var added struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	decodeData(t, out, &added)
	assert.Len(t, added.ID, generatedIDLength)
	assert.Equal(t, "Eve", added.Name)
	assert.Equal(t, added.ID+",Eve,Biology,88.0\n", readFile(t, "students.txt"))
}

func TestAdd_WrongArgCount(t *testing.T) {
	isolateConfig(t)

	_, _, err := executeRoot(t, "", "add", "S001", "Alice", "Math")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 4 arg")
}

func TestModify(t *testing.T) {
	isolateConfig(t)
	writeFile(t, "students.txt", sampleData)

	out, _, err := executeRoot(t, "", "modify", "S002", "99")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated score for Bob to 99.0")
	assert.Equal(t, "S001,Alice,Math,85.0\nS002,Bob,Physics,99.0\nS003,Carol,Chemistry,78.0\n", readFile(t, "students.txt"))
}

func TestModify_NotFound(t *testing.T) {
	isolateConfig(t)
	writeFile(t, "students.txt", sampleData)

	out, _, err := executeRoot(t, "", "modify", "S999", "99")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "NOT_FOUND")
}

func TestDelete_Confirmed(t *testing.T) {
	isolateConfig(t)
	writeFile(t, "students.txt", sampleData)

	out, errOut, err := executeRoot(t, "y\n", "delete", "S002")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Are you sure you want to delete Bob?")
	assert.Contains(t, out, "Student Bob deleted")
	assert.Equal(t, "S001,Alice,Math,85.0\nS003,Carol,Chemistry,78.0\n", readFile(t, "students.txt"))
}

func TestDelete_Cancelled(t *testing.T) {
	isolateConfig(t)
	writeFile(t, "students.txt", sampleData)

	out, _, err := executeRoot(t, "n\n", "delete", "S002")
	require.NoError(t, err)
	assert.Contains(t, out, "Operation cancelled")
	assert.Equal(t, sampleData, readFile(t, "students.txt"))
}

func TestDelete_NoInputCancels(t *testing.T) {
	isolateConfig(t)
	writeFile(t, "students.txt", sampleData)

	out, _, err := executeRoot(t, "", "--format", "json", "delete", "S001")
	require.NoError(t, err)

	var res struct {
		Cancelled bool `json:"cancelled"`
	}
	decodeData(t, out, &res)
	assert.True(t, res.Cancelled)
	assert.Equal(t, sampleData, readFile(t, "students.txt"))
}

func TestDelete_YesFlag(t *testing.T) {
	isolateConfig(t)
	writeFile(t, "students.txt", sampleData)

	_, errOut, err := executeRoot(t, "", "delete", "--yes", "S001")
	require.NoError(t, err)
	assert.NotContains(t, errOut, "Are you sure")
	assert.Equal(t, "S002,Bob,Physics,92.5\nS003,Carol,Chemistry,78.0\n", readFile(t, "students.txt"))
}

func TestDelete_NotFound(t *testing.T) {
	isolateConfig(t)
	writeFile(t, "students.txt", sampleData)

	out, _, err := executeRoot(t, "", "delete", "--yes", "S999")
	require.Error(t, err)
	assert.Contains(t, out, "NOT_FOUND")
}

func TestSearch(t *testing.T) {
	isolateConfig(t)
	writeFile(t, "students.txt", sampleData)

	out, _, err := executeRoot(t, "", "search", "ALI")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 record(s):")
	assert.Contains(t, out, "ID: S001 | Name: Alice | Subject: Math | Score: 85.0")

	out, _, err = executeRoot(t, "", "search", "nobody")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching student found.")
}

func TestSearch_JSON(t *testing.T) {
	isolateConfig(t)
	writeFile(t, "students.txt", sampleData)

	out, _, err := executeRoot(t, "", "--format", "json", "search", "s00")
	require.NoError(t, err)

	var res SearchResult
	decodeData(t, out, &res)
	assert.Equal(t, "s00", res.Keyword)
	assert.Equal(t, 3, res.Count)
}

func TestSort_PersistsOrder(t *testing.T) {
	isolateConfig(t)
	writeFile(t, "students.txt", "A,A,Math,70.0\nB,B,Math,50.0\nC,C,Math,70.0\nD,D,Math,30.0\n")

	_, _, err := executeRoot(t, "", "sort")
	require.NoError(t, err)
	assert.Equal(t, "D,D,Math,30.0\nB,B,Math,50.0\nA,A,Math,70.0\nC,C,Math,70.0\n", readFile(t, "students.txt"))

	_, _, err = executeRoot(t, "", "sort", "--desc")
	require.NoError(t, err)
	assert.Equal(t, "A,A,Math,70.0\nC,C,Math,70.0\nB,B,Math,50.0\nD,D,Math,30.0\n", readFile(t, "students.txt"))
}

func TestStats_Text(t *testing.T) {
	isolateConfig(t)
	writeFile(t, "students.txt", "A,A,Math,80.0\nB,B,Math,90.0\nC,C,Math,70.0\n")

	out, _, err := executeRoot(t, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Students: 3")
	assert.Contains(t, out, "Average Score: 80.00")
	assert.Contains(t, out, "Highest Score: 90.0")
	assert.Contains(t, out, "Lowest Score: 70.0")
}

func TestStats_YAMLGolden(t *testing.T) {
	isolateConfig(t)
	writeFile(t, "students.txt", sampleData)

	out, _, err := executeRoot(t, "", "--format", "yaml", "stats")
	require.NoError(t, err)
	newGolden(t).Assert(t, "stats_yaml", []byte(out))
}

func TestStats_NoData(t *testing.T) {
	isolateConfig(t)

	out, _, err := executeRoot(t, "", "stats")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "No data to analyze.")

	out, _, err = executeRoot(t, "", "--format", "json", "stats")
	require.Error(t, err)
	resp := decodeData(t, out, nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NO_DATA", resp.Error.Code)
}

func TestExport_DefaultPath(t *testing.T) {
	isolateConfig(t)
	writeFile(t, "students.txt", sampleData)

	out, _, err := executeRoot(t, "", "export")
	require.NoError(t, err)
	assert.Contains(t, out, "Report exported to report.txt")

	report := readFile(t, "report.txt")
	assert.True(t, strings.HasPrefix(report, "=== Student Report ===\n"))
	assert.Contains(t, report, "S003       Carol           Chemistry       78.0")
	assert.Equal(t, sampleData, readFile(t, "students.txt"), "export does not touch data")
}

func TestExport_ExplicitPath(t *testing.T) {
	isolateConfig(t)
	writeFile(t, "students.txt", sampleData)

	out, _, err := executeRoot(t, "", "--format", "json", "export", "grades-report.txt")
	require.NoError(t, err)

	var res ExportResult
	decodeData(t, out, &res)
	assert.Equal(t, ExportResult{Path: "grades-report.txt", Count: 3}, res)
	assert.Contains(t, readFile(t, "grades-report.txt"), "Alice")
}

func TestExport_UnwritablePath(t *testing.T) {
	isolateConfig(t)

	out, _, err := executeRoot(t, "", "export", "missing-dir/report.txt")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "IO_ERROR")
}

func TestGoldenDir_SurvivesChdir(t *testing.T) {
	isolateConfig(t)

	assert.True(t, filepath.IsAbs(goldenDir))
	for _, name := range []string{"list_json", "stats_yaml"} {
		_, err := os.Stat(filepath.Join(goldenDir, name+".golden"))
		assert.NoError(t, err, name)
	}
}

const dataWithBadLine = "S001,Alice,Math,85.0\nS002,Bob,Physics,9O\nS003,Carol,Chemistry,78.0\n"

func TestMutations_RefuseToDropSkippedLines(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"add", []string{"add", "S004", "Dan", "History", "60"}},
		{"modify", []string{"modify", "S001", "90"}},
		{"delete", []string{"delete", "--yes", "S003"}},
		{"sort", []string{"sort"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfig(t)
			writeFile(t, "students.txt", dataWithBadLine)

			out, errOut, err := executeRoot(t, "", tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.Contains(t, errOut, "line 2")
			assert.Contains(t, out, "PARSE_ERROR")
			assert.Contains(t, out, "--discard-invalid")
			assert.Equal(t, dataWithBadLine, readFile(t, "students.txt"), "file untouched")
		})
	}
}

func TestMutations_DiscardInvalid(t *testing.T) {
	isolateConfig(t)
	writeFile(t, "students.txt", dataWithBadLine)

	_, _, err := executeRoot(t, "", "--discard-invalid", "add", "S004", "Dan", "History", "60")
	require.NoError(t, err)
	assert.Equal(t,
		"S001,Alice,Math,85.0\nS003,Carol,Chemistry,78.0\nS004,Dan,History,60.0\n",
		readFile(t, "students.txt"))
}

func TestMutations_RefusalJSON(t *testing.T) {
	isolateConfig(t)
	writeFile(t, "students.txt", dataWithBadLine)

	out, _, err := executeRoot(t, "", "--format", "json", "modify", "S001", "90")
	require.Error(t, err)

	resp := decodeData(t, out, nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "PARSE_ERROR", resp.Error.Code)
}

func TestSave_UnwritableDataFile(t *testing.T) {
	isolateConfig(t)
	require.NoError(t, os.Mkdir("data", 0o755))

	_, _, err := executeRoot(t, "", "--file", "data", "add", "S001", "Alice", "Math", "85")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConfigInit(t *testing.T) {
	isolateConfig(t)

	out, _, err := executeRoot(t, "", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote gradebook.yaml")
	assert.Contains(t, readFile(t, "gradebook.yaml"), "data_file: students.txt")

	_, _, err = executeRoot(t, "", "config", "init")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, _, err = executeRoot(t, "", "config", "init", "--force")
	require.NoError(t, err)
}

func TestSharedFixtureMatchesSample(t *testing.T) {
	assert.Equal(t, sampleData, strings.Join(testutil.SampleLines, "\n")+"\n")
}
