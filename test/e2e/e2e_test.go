package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEndToEnd_ComplexNestedStructures tests the application with complex nested JSON structures
func TestEndToEnd_ComplexNestedStructures(t *testing.T) {
	// Create a temporary directory for test files
	tempDir, err := os.MkdirTemp("", "jsoncore-e2e")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tempDir) }()

	// Complex nested JSON with various types
	jsonContent := `{
		"id": 12345,
		"uuid": "550e8400-e29b-41d4-a716-446655440000",
		"createdAt": "2023-05-20T14:56:23Z",
		"updatedAt": null,
		"config": {
			"enabled": true,
			"timeoutSeconds": 30,
			"features": ["logging", "metrics", "alerting"],
			"rateLimits": {
				"perSecond": 100,
				"perMinute": 1000
			}
		},
		"users": [
			{"id": 1, "name": "Alice", "roles": ["admin", "user"]},
			{"id": 2, "name": "Bob", "roles": ["user"]}
		],
		"stats": {
			"requests": 1234567,
			"successRate": 0.9999,
			"responseTimes": [0.045, 0.067, 0.032, 0.051]
		},
		"active": true
	}`

	jsonFile := filepath.Join(tempDir, "complex.json")
	err = os.WriteFile(jsonFile, []byte(jsonContent), 0644)
	require.NoError(t, err)

	outputFile := filepath.Join(tempDir, "complex_output.json")

	// Run the CLI command
	cmd := exec.Command("go", "run", "../../main.go", "-i", jsonFile, "-o", outputFile,
		"--strategy", "insertion_order", "--key-case", "snake", "--pretty", "--shrink")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "CLI command failed: %s", string(output))

	written, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	out := string(written)

	// Member order follows the input, keys are rewritten at every level
	assert.True(t, strings.HasPrefix(out, "{\n  \"id\": 12345,\n  \"uuid\": "))
	assert.Less(t, strings.Index(out, `"created_at"`), strings.Index(out, `"updated_at"`))
	assert.Contains(t, out, `"timeout_seconds": 30`)
	assert.Contains(t, out, `"per_second": 100`)
	assert.Contains(t, out, `"success_rate": 0.9999`)
	assert.Contains(t, out, `"updated_at": null`)
	assert.NotContains(t, out, "createdAt")

	// The output is valid JSON with the same content
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(written, &decoded))
	assert.Len(t, decoded, 8)
	assert.Len(t, decoded["users"], 2)
}

// TestEndToEnd_StrategiesAgree checks that both strategies store the same document
func TestEndToEnd_StrategiesAgree(t *testing.T) {
	tempDir := t.TempDir()

	jsonFile := filepath.Join(tempDir, "items.json")
	generateLargeJSON(t, jsonFile, 50)

	sortedOut := filepath.Join(tempDir, "sorted.json")
	cmd := exec.Command("go", "run", "../../main.go", "-i", jsonFile, "-o", sortedOut, "--strategy", "sorted")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "CLI command failed: %s", string(output))

	// Compare the original against the sorted re-emission under insertion order
	cmd = exec.Command("go", "run", "../../main.go", "-i", jsonFile, "--compare", sortedOut,
		"--strategy", "insertion_order", "--bulk")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	require.NoError(t, cmd.Run())
	assert.Equal(t, "equal\n", stdout.String())
}

// TestEndToEnd_DuplicateKeys tests how each storage mode treats a repeated key
func TestEndToEnd_DuplicateKeys(t *testing.T) {
	jsonContent := `{"a": 1, "b": 2, "a": 3}`

	testCases := []struct {
		name       string
		args       []string
		expected   string
		duplicates int
	}{
		{"Sorted", []string{"--strategy", "sorted"}, `{"a":3,"b":2}`, 0},
		{"SortedBulk", []string{"--strategy", "sorted", "--bulk"}, `{"a":3,"b":2}`, 0},
		{"InsertionOrder", []string{"--strategy", "insertion_order"}, `{"a":3,"b":2}`, 0},
		{"InsertionOrderBulk", []string{"--strategy", "insertion_order", "--bulk"}, `{"a":1,"b":2,"a":3}`, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := exec.Command("go", append([]string{"run", "../../main.go"}, tc.args...)...)
			cmd.Stdin = strings.NewReader(jsonContent)
			var stdout, stderr bytes.Buffer
			cmd.Stdout = &stdout
			cmd.Stderr = &stderr
			require.NoError(t, cmd.Run(), stderr.String())
			assert.Equal(t, tc.expected+"\n", stdout.String())

			cmd = exec.Command("go", append([]string{"run", "../../main.go", "--stats"}, tc.args...)...)
			cmd.Stdin = strings.NewReader(jsonContent)
			stdout.Reset()
			cmd.Stdout = &stdout
			require.NoError(t, cmd.Run())

			var stats struct {
				Duplicates int `json:"duplicates"`
			}
			require.NoError(t, json.Unmarshal(stdout.Bytes(), &stats))
			assert.Equal(t, tc.duplicates, stats.Duplicates)
		})
	}
}

// generateLargeJSON generates a large JSON file with the specified number of items
func generateLargeJSON(t testing.TB, filePath string, itemCount int) {
	// Seed random for reproducible results
	rng := rand.New(rand.NewSource(42))

	items := make([]map[string]interface{}, itemCount)

	for i := 0; i < itemCount; i++ {
		items[i] = map[string]interface{}{
			"id":          i + 1,
			"guid":        fmt.Sprintf("%x-%x-%x-%x-%x", rng.Uint32(), rng.Uint32()&0xffff, rng.Uint32()&0xffff, rng.Uint32()&0xffff, rng.Uint32()<<16|rng.Uint32()),
			"name":        fmt.Sprintf("Item %d", i+1),
			"description": fmt.Sprintf("This is item number %d in the test dataset", i+1),
			"created_at":  time.Now().Add(-time.Duration(rng.Intn(10000)) * time.Hour).Format(time.RFC3339),
			"price":       rng.Float64() * 1000,
			"quantity":    rng.Intn(100),
			"active":      rng.Intn(2) == 1,
			"tags":        []string{"tag1", "tag2", "tag3"}[0 : rng.Intn(3)+1],
			"metadata": map[string]interface{}{
				"source":      "test",
				"priority":    rng.Intn(5) + 1,
				"processed":   rng.Intn(2) == 1,
				"score":       rng.Float64(),
				"retry_count": rng.Intn(5),
			},
		}
	}

	jsonData, err := json.MarshalIndent(items, "", "  ")
	require.NoError(t, err)

	err = os.WriteFile(filePath, jsonData, 0644)
	require.NoError(t, err)
}

// BenchmarkLargeJSON benchmarks the application with large JSON files
func BenchmarkLargeJSON(b *testing.B) {
	// Skip in short mode
	if testing.Short() {
		b.Skip("skipping benchmark in short mode")
	}

	tempDir, err := os.MkdirTemp("", "jsoncore-bench")
	require.NoError(b, err)
	defer func() { _ = os.RemoveAll(tempDir) }()

	sizes := []struct {
		name      string
		itemCount int
	}{
		{"100Items", 100},
		{"1000Items", 1000},
		{"10000Items", 10000},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			jsonFile := filepath.Join(tempDir, fmt.Sprintf("%s.json", size.name))
			generateLargeJSON(b, jsonFile, size.itemCount)

			outputFile := filepath.Join(tempDir, fmt.Sprintf("%s_output.json", size.name))

			// Reset the timer before the actual benchmark
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				cmd := exec.Command("go", "run", "../../main.go", "-i", jsonFile, "-o", outputFile)
				output, err := cmd.CombinedOutput()
				require.NoError(b, err, "CLI command failed: %s", string(output))

				_, err = os.Stat(outputFile)
				require.NoError(b, err, "Output file was not created")

				_ = os.Remove(outputFile)
			}
		})
	}
}

// TestEndToEnd_EdgeCases tests various edge cases
func TestEndToEnd_EdgeCases(t *testing.T) {
	testCases := []struct {
		name     string
		json     string
		expected string
		isError  bool
	}{
		{name: "EmptyObject", json: `{}`, expected: "{}\n"},
		{name: "EmptyArray", json: `[]`, expected: "[]\n"},
		{name: "SingleValue", json: `"just a string"`, expected: "\"just a string\"\n"},
		{name: "SingleNumber", json: `42`, expected: "42\n"},
		{name: "NumberTextKept", json: `[1.50, -0, 1e3]`, expected: "[1.50,-0,1e3]\n"},
		{name: "SingleBoolean", json: `true`, expected: "true\n"},
		{name: "SingleNull", json: `null`, expected: "null\n"},
		{name: "Unicode", json: `{"ключ": "значение", "emoji": "🎉"}`, expected: "{\"emoji\":\"🎉\",\"ключ\":\"значение\"}\n"},
		{name: "InvalidJSON", json: `{"name": "Invalid JSON",}`, isError: true},
		{name: "TrailingValue", json: `{} []`, isError: true},
		{name: "Truncated", json: `{"a": [1, 2`, isError: true},
		{
			name:     "DeeplyNestedObject",
			json:     `{"level1":{"level2":{"level3":{"level4":{"level5":{"value":42}}}}}}`,
			expected: "{\"level1\":{\"level2\":{\"level3\":{\"level4\":{\"level5\":{\"value\":42}}}}}}\n",
		},
		{name: "DeeplyNestedArray", json: `[[[[[[42]]]]]]`, expected: "[[[[[[42]]]]]]\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Run the CLI command
			cmd := exec.Command("go", "run", "../../main.go")
			cmd.Stdin = strings.NewReader(tc.json)
			var stdout bytes.Buffer
			cmd.Stdout = &stdout
			var stderr bytes.Buffer
			cmd.Stderr = &stderr

			err := cmd.Run()

			if tc.isError {
				assert.Error(t, err, "Expected an error for %s", tc.name)
			} else {
				assert.NoError(t, err, "Unexpected error for %s: %s", tc.name, stderr.String())
				assert.Equal(t, tc.expected, stdout.String(), "Unexpected output for %s", tc.name)
			}
		})
	}
}
