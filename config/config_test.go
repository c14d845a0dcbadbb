package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	cfg := map[string]string{
		"PORT":          "9090",
		"BAD_INT":       "nine",
		"EMPTY":         "",
		"FLAG":          "true",
		"JWT_EXPIRES":   "24h",
		"BAD_DURATION":  "soon",
		"ORIGINS":       " https://a.example , ,https://b.example",
	}

	assert.Equal(t, "9090", GetString(cfg, "PORT", "8080"))
	assert.Equal(t, "8080", GetString(cfg, "EMPTY", "8080"))
	assert.Equal(t, "x", GetString(nil, "PORT", "x"))

	assert.Equal(t, 9090, GetInt(cfg, "PORT", 1))
	assert.Equal(t, 1, GetInt(cfg, "BAD_INT", 1))
	assert.Equal(t, 1, GetInt(cfg, "MISSING", 1))

	assert.True(t, GetBool(cfg, "FLAG", false))
	assert.False(t, GetBool(cfg, "PORT", false))

	assert.Equal(t, 24*time.Hour, GetDuration(cfg, "JWT_EXPIRES", time.Hour))
	assert.Equal(t, time.Hour, GetDuration(cfg, "BAD_DURATION", time.Hour))

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, GetList(cfg, "ORIGINS"))
	assert.Nil(t, GetList(cfg, "MISSING"))
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("BLOG_TEST_KEY", "a=b")

	cfg := New()

	assert.Equal(t, "a=b", cfg["BLOG_TEST_KEY"])
}

type fakeParameterStore struct {
	pages [][]types.Parameter
	err   error
	calls int
}

func (f *fakeParameterStore) GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	page := f.pages[f.calls]
	f.calls++

	out := &ssm.GetParametersByPathOutput{Parameters: page}
	if f.calls < len(f.pages) {
		out.NextToken = aws.String("more")
	}
	return out, nil
}

func TestLoadParameters(t *testing.T) {
	store := &fakeParameterStore{pages: [][]types.Parameter{
		{
			{Name: aws.String("/blog/prod/JWT_SECRET"), Value: aws.String("from-ssm")},
			{Name: aws.String("/blog/prod/PORT"), Value: aws.String("7000")},
		},
		{
			{Name: aws.String("/blog/prod/nested/GOOGLE_API_KEY"), Value: aws.String("key")},
		},
	}}
	cfg := map[string]string{"PORT": "8080"}

	loaded, err := LoadParameters(context.Background(), cfg, store, "/blog/prod")

	require.NoError(t, err)
	assert.Equal(t, 2, loaded)
	assert.Equal(t, 2, store.calls)
	assert.Equal(t, "from-ssm", cfg["JWT_SECRET"])
	assert.Equal(t, "key", cfg["GOOGLE_API_KEY"])
	assert.Equal(t, "8080", cfg["PORT"], "environment wins over parameter store")
}

func TestLoadParametersSkipsWithoutPrefix(t *testing.T) {
	store := &fakeParameterStore{err: errors.New("should not be called")}

	loaded, err := LoadParameters(context.Background(), map[string]string{}, store, "")

	require.NoError(t, err)
	assert.Zero(t, loaded)
}

func TestLoadParametersPropagatesErrors(t *testing.T) {
	store := &fakeParameterStore{err: errors.New("access denied")}

	_, err := LoadParameters(context.Background(), map[string]string{}, store, "/blog")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}
