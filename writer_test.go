package facemark

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readTable(t *testing.T, outDir, split string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(outDir, split+"_landmarks.csv"))
	if err != nil {
		t.Fatalf("could not read the table file: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestWriteSplit_Header(t *testing.T) {
	outDir := t.TempDir()
	require.NoError(t, WriteSplit(outDir, "testing_set", nil))

	lines := readTable(t, outDir, "testing_set")
	require.Len(t, lines, 1)

	fields := strings.Split(lines[0], ",")
	assert.Len(t, fields, 2+NumLandmarks*2)
	assert.Equal(t, "image_name", fields[0])
	assert.Equal(t, "label", fields[1])
	assert.Equal(t, "landmark_0_x", fields[2])
	assert.Equal(t, "landmark_0_y", fields[3])
	assert.Equal(t, "landmark_67_x", fields[len(fields)-2])
	assert.Equal(t, "landmark_67_y", fields[len(fields)-1])
}

func TestWriteSplit_Formatting(t *testing.T) {
	outDir := t.TempDir()
	row := &Row{
		ImageName: "face.png",
		Label:     "round",
		Coords: Normalize(map[RegionName][]Point{
			Nose: {{X: 0.123456789, Y: 0.5}},
		}),
	}
	require.NoError(t, WriteSplit(outDir, "training_set", []*Row{row}))

	lines := readTable(t, outDir, "training_set")
	require.Len(t, lines, 2)

	fields := strings.Split(lines[1], ",")
	require.Len(t, fields, 2+NumLandmarks*2)
	assert.Equal(t, "face.png", fields[0])
	assert.Equal(t, "round", fields[1])
	assert.Equal(t, "0.123457", fields[2])
	assert.Equal(t, "0.500000", fields[3])

	// Every coordinate renders with exactly six decimal places.
	coord := regexp.MustCompile(`^\d+\.\d{6}$`)
	for _, f := range fields[2:] {
		assert.Regexp(t, coord, f)
	}
}

func TestWriteSplit_AtomicRename(t *testing.T) {
	outDir := t.TempDir()
	require.NoError(t, WriteSplit(outDir, "training_set", nil))

	files, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "training_set_landmarks.csv", files[0].Name())
}

func TestWriteSplit_CreatesOutputDir(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out", "tables")
	require.NoError(t, WriteSplit(outDir, "testing_set", nil))

	_, err := os.Stat(filepath.Join(outDir, "testing_set_landmarks.csv"))
	assert.NoError(t, err)
}

func TestWriteSplit_QuotesDelimiterBearingFields(t *testing.T) {
	outDir := t.TempDir()
	row := &Row{
		ImageName: "face.png",
		Label:     "long,narrow",
		Coords:    Normalize(nil),
	}
	require.NoError(t, WriteSplit(outDir, "training_set", []*Row{row}))

	lines := readTable(t, outDir, "training_set")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], `"long,narrow"`)

	fields := strings.Split(lines[1], ",")
	// The quoted label adds one raw comma, the column count is intact
	// for any RFC 4180 aware reader.
	assert.Len(t, fields, 2+NumLandmarks*2+1)
}

func TestWriteSplit_FailsOnUnwritableDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("could not create blocker file: %v", err)
	}

	err := WriteSplit(filepath.Join(blocker, "out"), "training_set", nil)
	assert.Error(t, err)
}
