package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/sellerconsole/internal/domain/lead"
	"github.com/rpggio/sellerconsole/internal/domain/opportunity"
	"github.com/rpggio/sellerconsole/internal/query"
	"github.com/rpggio/sellerconsole/internal/testserver"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the developer's environment and config files out of a test.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, key := range []string{"SERVER", "TIMEOUT", "RETRIES", "OUTPUT"} {
		t.Setenv(envPrefix+"_"+key, "")
		require.NoError(t, os.Unsetenv(envPrefix+"_"+key))
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLoadSettings_Defaults(t *testing.T) {
	isolate(t)

	s, err := loadSettings("", pflag.NewFlagSet("test", pflag.ContinueOnError))
	require.NoError(t, err)
	assert.Equal(t, defaultServer, s.Server)
	assert.Equal(t, defaultTimeout, s.Timeout)
	assert.Equal(t, defaultRetries, s.Retries)
	assert.Equal(t, outputTable, s.Output)
}

func TestLoadSettings_Precedence(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "sellerctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: http://from-file:1\ntimeout: 3s\nretries: 5\n"), 0o600))
	t.Setenv("SELLERCTL_RETRIES", "7")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(cfgKeyServer, defaultServer, "")
	flags.Int(cfgKeyRetries, defaultRetries, "")
	require.NoError(t, flags.Parse([]string{"--server", "http://from-flag:2"}))

	s, err := loadSettings(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "http://from-flag:2", s.Server)
	assert.Equal(t, 3*time.Second, s.Timeout)
	assert.Equal(t, 7, s.Retries)
}

func TestLoadSettings_Errors(t *testing.T) {
	isolate(t)

	_, err := loadSettings(filepath.Join(t.TempDir(), "missing.yaml"), pflag.NewFlagSet("test", pflag.ContinueOnError))
	require.Error(t, err)

	t.Setenv("SELLERCTL_OUTPUT", "xml")
	_, err = loadSettings("", pflag.NewFlagSet("test", pflag.ContinueOnError))
	require.ErrorContains(t, err, "output must be")
}

func TestCLI_LeadWorkflow(t *testing.T) {
	isolate(t)
	ts := testserver.New(t, testserver.WithSeedCount(30))
	server := "--server=" + ts.Server.URL

	out, err := runCLI(t, server, "-o", "json", "leads", "list", "--status", "New", "--sort", "name", "--order", "asc", "-n", "5")
	require.NoError(t, err)
	var page query.Result[lead.Lead]
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.NotEmpty(t, page.Items)
	assert.LessOrEqual(t, len(page.Items), 5)
	assert.Equal(t, query.SortName, page.Pagination.SortBy)
	target := page.Items[0]

	out, err = runCLI(t, server, "-o", "json", "leads", "update", target.ID, "--score", "88")
	require.NoError(t, err)
	var updated lead.Lead
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	assert.Equal(t, 88, updated.Score)
	assert.Equal(t, target.Name, updated.Name)

	out, err = runCLI(t, server, "-o", "json", "leads", "convert", target.ID, "--amount", "1500")
	require.NoError(t, err)
	var res lead.ConvertResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, lead.StatusConverted, res.Lead.Status)
	require.NotNil(t, res.Opportunity.Amount)
	assert.InDelta(t, 1500, *res.Opportunity.Amount, 0.001)

	_, err = runCLI(t, server, "leads", "convert", target.ID)
	require.Error(t, err)

	out, err = runCLI(t, server, "leads", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Converted")
	assert.Contains(t, out, "Total")
}

func TestCLI_OpportunityWorkflow(t *testing.T) {
	isolate(t)
	ts := testserver.New(t, testserver.WithBackend("sqlite"), testserver.WithSeedCount(10))
	server := "--server=" + ts.Server.URL

	out, err := runCLI(t, server, "-o", "json", "opps", "create", "--name", "Renewal", "--account", "Globex", "--amount", "4800")
	require.NoError(t, err)
	var created opportunity.Opportunity
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, opportunity.StageProspecting, created.Stage)

	out, err = runCLI(t, server, "-o", "json", "opps", "update", created.ID, "--stage", "Proposal", "--clear-amount")
	require.NoError(t, err)
	var updated opportunity.Opportunity
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	assert.Equal(t, opportunity.StageProposal, updated.Stage)
	assert.Nil(t, updated.Amount)

	out, err = runCLI(t, server, "opps", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Renewal")
	assert.Contains(t, out, "page 1/1")

	out, err = runCLI(t, server, "opps", "delete", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "deleted "+created.ID+"\n", out)

	_, err = runCLI(t, server, "opps", "get", created.ID)
	require.ErrorContains(t, err, "not found")

	_, err = runCLI(t, server, "opps", "create", "--name", "No account")
	require.Error(t, err)
}

func TestCLI_Admin(t *testing.T) {
	isolate(t)
	ts := testserver.New(t, testserver.WithSeedCount(10))
	server := "--server=" + ts.Server.URL

	out, err := runCLI(t, server, "error-rate", "0.25")
	require.NoError(t, err)
	assert.Equal(t, "error rate: 25%\n", out)
	assert.InDelta(t, 0.25, ts.App.Policy.Rate(), 0.0001)

	_, err = runCLI(t, server, "error-rate", "lots")
	require.ErrorContains(t, err, "rate must be a number")

	_, err = runCLI(t, server, "error-rate", "0")
	require.NoError(t, err)

	out, err = runCLI(t, server, "reset")
	require.NoError(t, err)
	assert.Equal(t, "data reset\n", out)

	out, err = runCLI(t, server, "dashboard")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "STATUS") && strings.Contains(out, "STAGE"), out)

	_, err = runCLI(t, server, "activity", "-n", "3")
	require.NoError(t, err)
}
