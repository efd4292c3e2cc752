package docastest_test

import (
	"context"
	"embed"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "github.com/viant/afs/embed"

	"github.com/viant/docastest"
	"github.com/viant/docastest/service/approval"
)

//go:embed testdata/*
var embedFS embed.FS

func newService(t *testing.T) (*docastest.Service, string) {
	t.Helper()
	cfg := docastest.DefaultConfig()
	cfg.DocsRoot = filepath.Join(t.TempDir(), "docs")
	return docastest.New(docastest.WithConfig(cfg)), cfg.DocsRoot
}

func writeFile(t *testing.T, location, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
	require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
}

func TestCase_Approve(t *testing.T) {
	type testCase struct {
		name           string
		caseName       string
		testID         string
		approved       string
		hasApproved    bool
		staleReceived  bool
		fragments      []string
		expectErr      bool
		expectLine     int
		expectReceived string
	}

	tests := []testCase{
		{
			name:        "matching baseline",
			caseName:    "widget",
			testID:      "docs::widget",
			approved:    "= Widget\n\nalpha",
			hasApproved: true,
			fragments:   []string{"alpha"},
		},
		{
			name:           "divergent line",
			caseName:       "t",
			testID:         "docs::divergent",
			approved:       "= T\n\nA\nB",
			hasApproved:    true,
			fragments:      []string{"A\n", "C"},
			expectErr:      true,
			expectLine:     4,
			expectReceived: "= T\n\nA\nC",
		},
		{
			name:           "no approved file",
			caseName:       "new",
			testID:         "docs::fresh",
			fragments:      []string{"hello"},
			expectErr:      true,
			expectLine:     1,
			expectReceived: "= New\n\nhello",
		},
		{
			name:          "stale received deleted on pass",
			caseName:      "t",
			testID:        "docs::rerun",
			approved:      "= T\n\nfixed\n",
			hasApproved:   true,
			staleReceived: true,
			fragments:     []string{"fixed"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			srv, _ := newService(t)
			doc := srv.NewCase(tc.caseName, tc.testID)
			paths := srv.Config().Scheme().Derive(tc.testID)
			if tc.hasApproved {
				writeFile(t, paths.Approved, tc.approved)
			}
			if tc.staleReceived {
				writeFile(t, paths.Received, "stale")
			}
			assert.Equal(t, approval.StateCreated, doc.State())
			for _, fragment := range tc.fragments {
				doc.Write(fragment)
			}
			assert.Equal(t, approval.StateAccumulating, doc.State())
			rendered := doc.Content()

			err := doc.Approve(ctx)
			assert.Equal(t, rendered, doc.Content(), "approve must not mutate content")

			if !tc.expectErr {
				assert.NoError(t, err)
				assert.Equal(t, approval.StatePassed, doc.State())
				_, statErr := os.Stat(paths.Received)
				assert.True(t, os.IsNotExist(statErr))
				return
			}
			require.Error(t, err)
			assert.Equal(t, approval.StateMismatched, doc.State())
			var mismatch *approval.MismatchError
			require.True(t, errors.As(err, &mismatch))
			assert.Equal(t, tc.expectLine, mismatch.Line)
			received, rErr := os.ReadFile(paths.Received)
			require.NoError(t, rErr)
			assert.Equal(t, tc.expectReceived, string(received))
		})
	}
}

func TestRun(t *testing.T) {
	cfg, err := docastest.LoadConfig(context.Background(), "embed:///testdata/config.yaml", &embedFS)
	require.NoError(t, err)
	srv := docastest.New(docastest.WithConfig(cfg))

	t.Run("basic_usage", func(t *testing.T) {
		srv.Run(t, "", func(doc *docastest.Case) {
			doc.Write("x")
			doc.Write("y")
			doc.Write("z")
		})
	})

	t.Run("explicit_title", func(t *testing.T) {
		srv.Run(t, "Using DocAsTest", func(doc *docastest.Case) {
			doc.Writef("Fragments are appended verbatim: %s\n", "xyz")
			doc.Write("Line breaks are written explicitly.")
		})
	})
}

type recordingTB struct {
	name  string
	fatal []interface{}
}

func (r *recordingTB) Helper()                   {}
func (r *recordingTB) Name() string              { return r.name }
func (r *recordingTB) Fatal(args ...interface{}) { r.fatal = args }

func TestRun_Failure(t *testing.T) {
	srv, root := newService(t)
	tb := &recordingTB{name: "TestGenerated/first_run"}

	srv.Run(tb, "", func(doc *docastest.Case) {
		assert.Equal(t, "docastest::TestGenerated::first_run", doc.TestID())
		assert.Equal(t, "First run", doc.Title())
		doc.Write("body")
	})

	require.Len(t, tb.fatal, 1)
	err, ok := tb.fatal[0].(error)
	require.True(t, ok)
	assert.True(t, errors.Is(err, approval.ErrContentMismatch))

	received, rErr := os.ReadFile(filepath.Join(root, "docastest", "TestGenerated", "first_run_received.adoc"))
	require.NoError(t, rErr)
	assert.Equal(t, "= First run\n\nbody", string(received))
}

func TestService_Identify(t *testing.T) {
	srv := docastest.New()
	tests := []struct {
		pkg      string
		testName string
		testID   string
		name     string
	}{
		{pkg: "widget", testName: "TestBasic_usage", testID: "widget::TestBasic_usage", name: "Basic_usage"},
		{pkg: "widget", testName: "Test_basic_usage", testID: "widget::Test_basic_usage", name: "basic_usage"},
		{pkg: "widget", testName: "TestA/sub_case", testID: "widget::TestA::sub_case", name: "sub_case"},
		{pkg: "", testName: "Test", testID: "Test", name: "Test"},
	}
	for _, tc := range tests {
		t.Run(tc.testName, func(t *testing.T) {
			testID, name := srv.Identify(tc.pkg, tc.testName)
			assert.Equal(t, tc.testID, testID)
			assert.Equal(t, tc.name, name)
		})
	}
}

func TestConfig(t *testing.T) {
	cfg := docastest.DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "./docs", cfg.DocsRoot)
	assert.Equal(t, "adoc", cfg.Extension)

	invalid := []func(c *docastest.Config){
		func(c *docastest.Config) { c.DocsRoot = "" },
		func(c *docastest.Config) { c.Extension = "" },
		func(c *docastest.Config) { c.Separator = "/" },
		func(c *docastest.Config) { c.Diff.Context = -1 },
	}
	for _, mutate := range invalid {
		c := docastest.DefaultConfig()
		mutate(c)
		assert.Error(t, c.Validate())
	}
}

func TestLoadConfig(t *testing.T) {
	ctx := context.Background()
	cfg, err := docastest.LoadConfig(ctx, "embed:///testdata/config.yaml", &embedFS)
	require.NoError(t, err)
	assert.Equal(t, "testdata/docs", cfg.DocsRoot)
	assert.Equal(t, "::", cfg.Separator, "unset fields keep defaults")
	assert.True(t, cfg.Diff.Unified)
	assert.Equal(t, 2, cfg.Diff.Context)

	t.Setenv("DOCASTEST_ROOT", "/srv/project")
	location := filepath.Join(t.TempDir(), "docastest.yaml")
	writeFile(t, location, "docsRoot: ${env.DOCASTEST_ROOT}/docs\nextension: md\n")
	cfg, err = docastest.LoadConfig(ctx, location)
	require.NoError(t, err)
	assert.Equal(t, "/srv/project/docs", cfg.DocsRoot)
	assert.Equal(t, "md", cfg.Extension)

	writeFile(t, location, "extension: \"\"\n")
	_, err = docastest.LoadConfig(ctx, location)
	assert.Error(t, err)
}
