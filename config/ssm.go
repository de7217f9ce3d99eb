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

// LoadSSM overlays every parameter stored under parameterPath in AWS SSM Parameter Store
// onto config. The last path segment becomes the key, so /portfolio/prod/JWT_SECRET sets
// JWT_SECRET. Values already present in config are overwritten.
func LoadSSM(ctx context.Context, config map[string]string, parameterPath string) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}
	return loadParameters(ctx, ssm.NewFromConfig(awsCfg), config, parameterPath)
}

func loadParameters(ctx context.Context, client ssm.GetParametersByPathAPIClient, config map[string]string, parameterPath string) error {
	if parameterPath == "" {
		return nil
	}

	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(parameterPath),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	loaded := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("failed to read SSM parameters under %s: %w", parameterPath, err)
		}
		for _, p := range page.Parameters {
			name := strings.TrimSpace(aws.ToString(p.Name))
			if name == "" {
				continue
			}
			config[path.Base(name)] = aws.ToString(p.Value)
			loaded++
		}
	}

	log.Info().Str("path", parameterPath).Int("count", loaded).Msg("Loaded SSM parameters")
	return nil
}
