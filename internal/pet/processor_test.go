package pet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() TaskConfig {
	return TaskConfig{
		Name:          "TEST",
		TrainFile:     "labeled.csv",
		DevFile:       "dev.csv",
		TestFile:      "test.csv",
		UnlabeledFile: "unlabeled.csv",
		TextAColumn:   "text",
		LabelColumns:  testLabels,
		Labels:        testLabels,
		MaxComboSize:  4,
	}
}

const testHeader = "text,fairness,non-moral,purity,degradation,loyalty,care,cheating,betrayal,subversion,authority,harm"

func writeSplit(t *testing.T, dir, filename string, lines ...string) {
	t.Helper()
	content := strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644))
}

func setupTestProcessor(t *testing.T, config TaskConfig) *CSVProcessor {
	t.Helper()
	processor, err := NewCSVProcessor(config)
	require.NoError(t, err)
	return processor
}

func TestCSVProcessor_SingleLabel(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, "labeled.csv",
		testHeader,
		"we must protect the weak,0,0,0,0,0,1,0,0,0,0,",
	)

	examples, err := setupTestProcessor(t, testConfig()).TrainExamples(dir)
	require.NoError(t, err)
	require.Len(t, examples, 1)

	assert.Equal(t, "train-0", examples[0].GUID)
	assert.Equal(t, "we must protect the weak", examples[0].TextA)
	assert.Nil(t, examples[0].TextB)
	assert.Equal(t, []string{"care"}, examples[0].Labels)
}

func TestCSVProcessor_GUIDsFollowFileOrder(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, "labeled.csv",
		testHeader,
		"e,0,0,0,0,0,0,0,0,0,0,1",
		"d,1,1,0,0,0,0,0,0,0,0,0",
		"c,0,0,0,0,0,0,0,0,0,0,0",
		"b,0,0,0,0,1,0,0,0,0,0,0",
		"a,0,0,0,0,0,0,0,0,0,0,0",
	)

	examples, err := setupTestProcessor(t, testConfig()).TrainExamples(dir)
	require.NoError(t, err)
	require.Len(t, examples, 5)

	texts := []string{"e", "d", "c", "b", "a"}
	for i, example := range examples {
		assert.Equal(t, "train-"+string(rune('0'+i)), example.GUID)
		assert.Equal(t, texts[i], example.TextA)
	}

	assert.Equal(t, []string{"harm"}, examples[0].Labels)
	assert.Equal(t, []string{"fairness", "non-moral"}, examples[1].Labels)
	assert.Empty(t, examples[2].Labels)
}

func TestCSVProcessor_OnlyLiteralOneSelectsLabel(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, "dev.csv",
		testHeader,
		`text,1.0,true, 1,yes,01,1,,0,-1,"1",2`,
	)

	examples, err := setupTestProcessor(t, testConfig()).DevExamples(dir)
	require.NoError(t, err)
	require.Len(t, examples, 1)

	assert.Equal(t, "dev-0", examples[0].GUID)
	assert.Equal(t, []string{"care", "authority"}, examples[0].Labels)
}

func TestCSVProcessor_QuotedText(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, "test.csv",
		"id,harm,text,care",
		`7,1,"hello, ""world""`+"\n"+`second line",0`,
	)

	config := testConfig()
	config.LabelColumns = []string{"care", "harm"}

	examples, err := setupTestProcessor(t, config).TestExamples(dir)
	require.NoError(t, err)
	require.Len(t, examples, 1)

	assert.Equal(t, "test-0", examples[0].GUID)
	assert.Equal(t, "hello, \"world\"\nsecond line", examples[0].TextA)
	assert.Equal(t, []string{"harm"}, examples[0].Labels)
}

func TestCSVProcessor_TextB(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, "unlabeled.csv",
		"premise,hypothesis,care",
		"first,second,1",
	)

	config := testConfig()
	config.TextAColumn = "premise"
	config.TextBColumn = "hypothesis"
	config.LabelColumns = []string{"care"}

	examples, err := setupTestProcessor(t, config).UnlabeledExamples(dir)
	require.NoError(t, err)
	require.Len(t, examples, 1)

	assert.Equal(t, "unlabeled-0", examples[0].GUID)
	require.NotNil(t, examples[0].TextB)
	assert.Equal(t, "second", *examples[0].TextB)
}

func TestCSVProcessor_HeaderOnly(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, "labeled.csv", testHeader)

	examples, err := setupTestProcessor(t, testConfig()).TrainExamples(dir)
	require.NoError(t, err)
	assert.Empty(t, examples)
}

func TestCSVProcessor_MissingFile(t *testing.T) {
	dir := t.TempDir()

	examples, err := setupTestProcessor(t, testConfig()).TrainExamples(dir)
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.Nil(t, examples)

	_, err = setupTestProcessor(t, testConfig()).Examples(filepath.Join(dir, "missing"), TestSplit)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestCSVProcessor_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, "labeled.csv",
		"text,fairness,non-moral",
		"a,1,0",
	)

	_, err := setupTestProcessor(t, testConfig()).TrainExamples(dir)
	assert.ErrorIs(t, err, ErrParse)
	assert.ErrorContains(t, err, "purity")

	writeSplit(t, dir, "dev.csv",
		"body,care",
		"a,1",
	)
	config := testConfig()
	config.LabelColumns = []string{"care"}
	_, err = setupTestProcessor(t, config).DevExamples(dir)
	assert.ErrorIs(t, err, ErrParse)
	assert.ErrorContains(t, err, "text")

	config.TextBColumn = "other"
	writeSplit(t, dir, "test.csv",
		"text,care",
		"a,1",
	)
	_, err = setupTestProcessor(t, config).TestExamples(dir)
	assert.ErrorIs(t, err, ErrParse)
	assert.ErrorContains(t, err, "other")
}

func TestCSVProcessor_ShortRows(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, "labeled.csv",
		"text,care,harm,context",
		"a,1,1,first",
		"b,1",
		"",
		"c",
	)

	config := testConfig()
	config.TextBColumn = "context"
	config.LabelColumns = []string{"care", "harm"}

	examples, err := setupTestProcessor(t, config).TrainExamples(dir)
	require.NoError(t, err)
	require.Len(t, examples, 3)

	assert.Equal(t, []string{"care", "harm"}, examples[0].Labels)
	require.NotNil(t, examples[0].TextB)
	assert.Equal(t, "first", *examples[0].TextB)

	assert.Equal(t, "train-1", examples[1].GUID)
	assert.Equal(t, "b", examples[1].TextA)
	assert.Equal(t, []string{"care"}, examples[1].Labels)
	assert.Nil(t, examples[1].TextB)

	assert.Equal(t, "train-2", examples[2].GUID)
	assert.Equal(t, "c", examples[2].TextA)
	assert.Empty(t, examples[2].Labels)
}

func TestCSVProcessor_MissingTextCell(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, "labeled.csv",
		"care,text",
		"1",
	)

	config := testConfig()
	config.LabelColumns = []string{"care"}

	examples, err := setupTestProcessor(t, config).TrainExamples(dir)
	require.NoError(t, err)
	require.Len(t, examples, 1)
	assert.Equal(t, "", examples[0].TextA)
	assert.Equal(t, []string{"care"}, examples[0].Labels)
}

func TestCSVProcessor_BareQuotes(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, "labeled.csv",
		"text,care,harm",
		`he said "stop" now,1,0`,
		`5" screen,0,1`,
	)

	config := testConfig()
	config.LabelColumns = []string{"care", "harm"}

	examples, err := setupTestProcessor(t, config).TrainExamples(dir)
	require.NoError(t, err)
	require.Len(t, examples, 2)

	assert.Equal(t, `he said "stop" now`, examples[0].TextA)
	assert.Equal(t, []string{"care"}, examples[0].Labels)
	assert.Equal(t, `5" screen`, examples[1].TextA)
	assert.Equal(t, []string{"harm"}, examples[1].Labels)
}

func TestCSVProcessor_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, "labeled.csv", "")

	_, err := setupTestProcessor(t, testConfig()).TrainExamples(dir)
	assert.ErrorIs(t, err, ErrParse)
}

func TestCSVProcessor_MaxExamples(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, "labeled.csv",
		"text,care",
		"a,1",
		"b,0",
		"c,1",
	)

	config := testConfig()
	config.LabelColumns = []string{"care"}
	processor := setupTestProcessor(t, config)

	examples, err := processor.WithMaxExamples(2).TrainExamples(dir)
	require.NoError(t, err)
	require.Len(t, examples, 2)
	assert.Equal(t, "train-1", examples[1].GUID)

	examples, err = processor.TrainExamples(dir)
	require.NoError(t, err)
	assert.Len(t, examples, 3)
}

func TestCSVProcessor_UnknownSplit(t *testing.T) {
	_, err := setupTestProcessor(t, testConfig()).Examples(t.TempDir(), Split("validation"))
	assert.ErrorIs(t, err, ErrUnknownSplit)
}

func TestCSVProcessor_Labels(t *testing.T) {
	processor := setupTestProcessor(t, testConfig())

	labels := processor.Labels()
	assert.Equal(t, testLabels, labels)

	labels[0] = "modified"
	assert.Equal(t, "fairness", processor.Labels()[0])
}

func TestNewCSVProcessor_InvalidConfig(t *testing.T) {
	config := testConfig()
	config.DevFile = ""
	_, err := NewCSVProcessor(config)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	config = testConfig()
	config.LabelColumns = []string{"care", "compassion"}
	_, err = NewCSVProcessor(config)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
