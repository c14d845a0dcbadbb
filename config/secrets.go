package config

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// ParameterStore is the subset of the SSM client used to read secrets
type ParameterStore interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// NewParameterStore builds an SSM client from the default AWS credential chain
func NewParameterStore(ctx context.Context, region string) (*ssm.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return ssm.NewFromConfig(awsCfg), nil
}

/*
LoadParameters copies every parameter under prefix into config.

The last path segment becomes the key, so "/blog/prod/JWT_SECRET" sets JWT_SECRET.
Values already present in the environment win over the parameter store.
Returns the number of keys that were set.
*/
func LoadParameters(ctx context.Context, config map[string]string, store ParameterStore, prefix string) (int, error) {
	if prefix == "" {
		return 0, nil
	}

	loaded := 0
	var nextToken *string
	for {
		out, err := store.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
			Path:           aws.String(prefix),
			Recursive:      aws.Bool(true),
			WithDecryption: aws.Bool(true),
			NextToken:      nextToken,
		})
		if err != nil {
			return loaded, fmt.Errorf("failed to read parameters under %s: %w", prefix, err)
		}

		for _, param := range out.Parameters {
			name := path.Base(aws.ToString(param.Name))
			if name == "" || name == "/" || name == "." {
				continue
			}
			if existing, ok := config[name]; ok && strings.TrimSpace(existing) != "" {
				log.Debug().Str("key", name).Msg("Environment overrides parameter store value")
				continue
			}
			config[name] = aws.ToString(param.Value)
			loaded++
		}

		if out.NextToken == nil || aws.ToString(out.NextToken) == "" {
			break
		}
		nextToken = out.NextToken
	}

	return loaded, nil
}
