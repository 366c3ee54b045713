package injector_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raywall/backend-faker/pkg/config/injector"
)

// --- Mocks ---

type MockSSM struct {
	GetParameterFunc func(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

func (m *MockSSM) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	return m.GetParameterFunc(ctx, params, optFns...)
}

type MockSecrets struct {
	GetSecretValueFunc func(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

func (m *MockSecrets) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	return m.GetSecretValueFunc(ctx, params, optFns...)
}

type TestConfig struct {
	Addr        string
	Description string
	Port        int
	Nested      *NestedConfig
	Inner       InnerConfig
	Hosts       []string
}

type NestedConfig struct {
	URL string
}

type InnerConfig struct {
	Password string
}

func TestInjector_Inject_Environment(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache.local")
	t.Setenv("REGION", "us-east-1")

	target := &TestConfig{
		Addr:        "${env.REDIS_HOST}:6379",
		Description: "Faker running in ${env.REGION}",
		Port:        2000,
		Nested:      &NestedConfig{URL: "https://${env.REGION}.api.com"},
		Hosts:       []string{"${env.REDIS_HOST}", "static"},
	}

	err := injector.New().Inject(context.Background(), target)
	require.NoError(t, err)

	assert.Equal(t, "cache.local:6379", target.Addr)
	assert.Equal(t, "Faker running in us-east-1", target.Description)
	assert.Equal(t, 2000, target.Port)
	assert.Equal(t, "https://us-east-1.api.com", target.Nested.URL)
	assert.Equal(t, []string{"cache.local", "static"}, target.Hosts)
}

func TestInjector_Inject_SSM(t *testing.T) {
	value := "s3cr3t"
	mock := &MockSSM{
		GetParameterFunc: func(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
			assert.Equal(t, "/faker/redis", *params.Name)
			assert.True(t, *params.WithDecryption)
			return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: &value}}, nil
		},
	}

	target := &TestConfig{Inner: InnerConfig{Password: "${ssm./faker/redis}"}}
	err := injector.New(injector.WithSSMClient(mock)).Inject(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", target.Inner.Password)
}

func TestInjector_Inject_Secret(t *testing.T) {
	secret := `{"password":"p@ss","user":"faker"}`
	mock := &MockSecrets{
		GetSecretValueFunc: func(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
			assert.Equal(t, "faker/redis", *params.SecretId)
			return &secretsmanager.GetSecretValueOutput{SecretString: &secret}, nil
		},
	}
	inj := injector.New(injector.WithSecretsClient(mock))

	t.Run("Campo do JSON", func(t *testing.T) {
		target := &TestConfig{Inner: InnerConfig{Password: "${secret.faker/redis#password}"}}
		require.NoError(t, inj.Inject(context.Background(), target))
		assert.Equal(t, "p@ss", target.Inner.Password)
	})

	t.Run("Segredo inteiro", func(t *testing.T) {
		target := &TestConfig{Description: "${secret.faker/redis}"}
		require.NoError(t, inj.Inject(context.Background(), target))
		assert.JSONEq(t, secret, target.Description)
	})

	t.Run("Campo inexistente", func(t *testing.T) {
		target := &TestConfig{Description: "${secret.faker/redis#token}"}
		assert.Error(t, inj.Inject(context.Background(), target))
	})
}

func TestInjector_Inject_Errors(t *testing.T) {
	t.Run("Erro na AWS propaga", func(t *testing.T) {
		mock := &MockSSM{
			GetParameterFunc: func(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
				return nil, errors.New("AccessDenied")
			},
		}
		target := &TestConfig{Addr: "${ssm./x}"}
		err := injector.New(injector.WithSSMClient(mock)).Inject(context.Background(), target)
		assert.ErrorContains(t, err, "AccessDenied")
		assert.Equal(t, "${ssm./x}", target.Addr)
	})

	t.Run("Alvo invalido", func(t *testing.T) {
		assert.Error(t, injector.New().Inject(context.Background(), TestConfig{}))
		var nilCfg *TestConfig
		assert.Error(t, injector.New().Inject(context.Background(), nilCfg))
	})
}
