package config

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("PORTFOLIO_TEST_KEY", "a=b")

	cfg := New()
	assert.Equal(t, "a=b", cfg["PORTFOLIO_TEST_KEY"])
}

func TestGetters(t *testing.T) {
	cfg := map[string]string{
		"PORT":       "9090",
		"BAD_INT":    "nine",
		"EMPTY":      "",
		"ENABLED":    "true",
		"TTL":        "90s",
		"TTL_SECS":   "30",
		"ORIGINS":    " https://a.dev, ,https://b.dev ",
		"BLANK_LIST": " , ",
	}

	assert.Equal(t, "9090", GetString(cfg, "PORT", "8080"))
	assert.Equal(t, "fallback", GetString(cfg, "EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "PORT", "fallback"))

	assert.Equal(t, 9090, GetInt(cfg, "PORT", 8080))
	assert.Equal(t, 8080, GetInt(cfg, "BAD_INT", 8080))
	assert.Equal(t, 8080, GetInt(cfg, "MISSING", 8080))

	assert.True(t, GetBool(cfg, "ENABLED", false))
	assert.False(t, GetBool(cfg, "PORT", false))

	assert.Equal(t, 90*time.Second, GetDuration(cfg, "TTL", time.Minute))
	assert.Equal(t, 30*time.Second, GetDuration(cfg, "TTL_SECS", time.Minute))
	assert.Equal(t, time.Minute, GetDuration(cfg, "MISSING", time.Minute))

	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, GetList(cfg, "ORIGINS", nil))
	assert.Equal(t, []string{"*"}, GetList(cfg, "BLANK_LIST", []string{"*"}))
}

type fakeParameterClient struct {
	pages []*ssm.GetParametersByPathOutput
	calls int
}

func (f *fakeParameterClient) GetParametersByPath(_ context.Context, _ *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	page := f.pages[f.calls]
	f.calls++
	return page, nil
}

func TestLoadParametersOverlaysLastPathSegment(t *testing.T) {
	client := &fakeParameterClient{pages: []*ssm.GetParametersByPathOutput{
		{
			Parameters: []types.Parameter{
				{Name: aws.String("/portfolio/prod/JWT_SECRET"), Value: aws.String("s3cret")},
			},
			NextToken: aws.String("next"),
		},
		{
			Parameters: []types.Parameter{
				{Name: aws.String("/portfolio/prod/PORT"), Value: aws.String("7000")},
			},
		},
	}}

	cfg := map[string]string{"PORT": "8080"}
	require.NoError(t, loadParameters(context.Background(), client, cfg, "/portfolio/prod"))

	assert.Equal(t, "s3cret", cfg["JWT_SECRET"])
	assert.Equal(t, "7000", cfg["PORT"])
	assert.Equal(t, 2, client.calls)
}

func TestLoadParametersSkipsEmptyPath(t *testing.T) {
	client := &fakeParameterClient{}
	require.NoError(t, loadParameters(context.Background(), client, map[string]string{}, ""))
	assert.Zero(t, client.calls)
}
