package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/shop-dataset/config"
	"github.com/yeremiapane/shop-dataset/dataset"
	"github.com/yeremiapane/shop-dataset/models"
	"github.com/yeremiapane/shop-dataset/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	utils.InfoLogger.SetOutput(new(bytes.Buffer))
	utils.ErrorLogger.SetOutput(new(bytes.Buffer))
	os.Exit(m.Run())
}

func generateInto(t *testing.T, dir string, extra ...string) string {
	t.Helper()
	var out, errOut bytes.Buffer
	args := append([]string{"generate", "-out", dir,
		"-customers", "80", "-products", "20", "-orders", "120", "-now", "2025-02-01"}, extra...)
	require.Equal(t, 0, run(args, &out, &errOut), errOut.String())
	return out.String()
}

func TestGenerateThenValidate(t *testing.T) {
	dir := t.TempDir()
	out := generateInto(t, dir)

	for _, name := range models.TableNames {
		assert.FileExists(t, filepath.Join(dir, dataset.FileName(name)))
		assert.Contains(t, out, name)
	}
	md, err := dataset.ReadMetadata(dir)
	require.NoError(t, err)
	assert.Equal(t, 120, md.NOrders)
	assert.Equal(t, "2025-02-01", md.ReferenceDate.String())

	var report bytes.Buffer
	assert.Equal(t, 0, run([]string{"validate", "-dir", dir}, &report, &report))
	assert.Contains(t, report.String(), "validation passed")
}

func TestGenerateIsReproducible(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	generateInto(t, a, "-seed", "11")
	generateInto(t, b, "-seed", "11")
	for _, name := range models.TableNames {
		x, err := os.ReadFile(filepath.Join(a, dataset.FileName(name)))
		require.NoError(t, err)
		y, err := os.ReadFile(filepath.Join(b, dataset.FileName(name)))
		require.NoError(t, err)
		assert.Equal(t, x, y, name)
	}
}

func TestValidateExitsNonZeroOnViolations(t *testing.T) {
	dir := t.TempDir()
	generateInto(t, dir)

	path := filepath.Join(dir, dataset.FileName(models.TableProducts))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(string(raw), "\n")
	cols := strings.Split(lines[1], ",")
	cols[5] = "9999.00" // cost
	lines[1] = strings.Join(cols, ",")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644))

	var out bytes.Buffer
	assert.Equal(t, 1, run([]string{"validate", "-dir", dir, "-json"}, &out, &out))

	var report struct {
		Results []struct {
			Name       string `json:"name"`
			Violations int    `json:"violations"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	for _, r := range report.Results {
		if r.Name == "business/price_gte_cost" {
			assert.Equal(t, 1, r.Violations)
		}
	}
}

func TestValidateMissingDirectory(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 1, run([]string{"validate", "-dir", filepath.Join(t.TempDir(), "none")}, &out, &out))
	assert.Contains(t, out.String(), "error")
}

func TestGenerateThroughDatabase(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "shop.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", dsn)

	generateInto(t, t.TempDir(), "-db")

	var out bytes.Buffer
	assert.Equal(t, 0, run([]string{"validate", "-db"}, &out, &out), out.String())
	assert.Contains(t, out.String(), "validation passed")
}

func TestCommandErrors(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 2, run(nil, &out, &out))
	assert.Equal(t, 2, run([]string{"explode"}, &out, &out))
	assert.Equal(t, 2, run([]string{"generate", "-bogus"}, &out, &out))
	assert.Equal(t, 1, run([]string{"generate", "-out", t.TempDir(), "-orders", "0"}, &out, &out))
	assert.Equal(t, 0, run([]string{"help"}, &out, &out))
}

func TestCatalogCommand(t *testing.T) {
	var out bytes.Buffer
	require.Equal(t, 0, run([]string{"catalog"}, &out, &out))
	assert.Contains(t, out.String(), "PRODUCT TYPE")
	assert.Contains(t, out.String(), "Shampoo")
	assert.Contains(t, out.String(), "Nail Tools")
}

func TestServerEndToEnd(t *testing.T) {
	t.Setenv("OUTPUT_ROOT", t.TempDir())
	t.Setenv("GENERATOR_NOW", "2025-02-01")
	cfg, err := config.Load("")
	require.NoError(t, err)

	r, cleanup, err := buildServer(cfg)
	require.NoError(t, err)
	defer cleanup()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))

	body := `{"name":"e2e","customers":40,"products":10,"orders":60}`
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/datasets", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/datasets/e2e/validation", nil))
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// default burst is 3 generations
	codes := []int{}
	for i := 0; i < 3; i++ {
		w = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/datasets", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Contains(t, codes, http.StatusTooManyRequests)
}
