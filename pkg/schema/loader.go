package schema

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"gopkg.in/yaml.v3"

	"github.com/raywall/backend-faker/pkg/awsconf"
)

// --- Interfaces para Mocking ---

type S3Downloader interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type DynamoGetter interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// Loader lê o schema de um arquivo local, de um objeto S3 ou de um item
// do DynamoDB. Os clientes AWS são criados sob demanda quando não
// informados.
type Loader struct {
	s3Client     S3Downloader
	dynamoClient DynamoGetter
}

// LoaderOption configura o Loader.
type LoaderOption func(*Loader)

// WithS3Client define o cliente usado para fontes s3://.
func WithS3Client(c S3Downloader) LoaderOption {
	return func(l *Loader) { l.s3Client = c }
}

// WithDynamoClient define o cliente usado para fontes dynamodb://.
func WithDynamoClient(c DynamoGetter) LoaderOption {
	return func(l *Loader) { l.dynamoClient = c }
}

func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load é o atalho usado na inicialização.
func Load(ctx context.Context, source string) (Schema, error) {
	return NewLoader().Load(ctx, source)
}

// Load detecta a origem, lê o conteúdo e decodifica o schema.
func (l *Loader) Load(ctx context.Context, source string) (Schema, error) {
	var (
		raw    []byte
		format string
		err    error
	)

	switch {
	case strings.HasPrefix(source, "s3://"):
		raw, format, err = l.loadFromS3(ctx, source)
	case strings.HasPrefix(source, "dynamodb://"):
		raw, format, err = l.loadFromDynamoDB(ctx, source)
	default:
		path := strings.TrimPrefix(source, "file://")
		format = formatOf(path)
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}

	s, err := Decode(raw, format)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	return s, nil
}

// Decode interpreta o conteúdo como JSON ou YAML. O formato vazio é
// tratado como JSON.
func Decode(raw []byte, format string) (Schema, error) {
	var s Schema
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("malformed YAML schema: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(raw))
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("malformed JSON schema: %w", err)
		}
	}
	if s == nil {
		return nil, errors.New("schema must be a list of route definitions")
	}

	seen := make(map[string]bool, len(s))
	for _, r := range s {
		if seen[r.Path] {
			return nil, fmt.Errorf("duplicated route %s", r.Path)
		}
		seen[r.Path] = true
	}
	return s, nil
}

func (l *Loader) loadFromS3(ctx context.Context, uri string) ([]byte, string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, "", fmt.Errorf("URL S3 inválida: %w", err)
	}
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")

	client := l.s3Client
	if client == nil {
		cfg, err := awsconf.GetAWSConfig(ctx)
		if err != nil {
			return nil, "", err
		}
		client = s3.NewFromConfig(cfg)
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, "", err
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	return data, formatOf(key), err
}

func (l *Loader) loadFromDynamoDB(ctx context.Context, uri string) ([]byte, string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, "", fmt.Errorf("URL DynamoDB inválida: %w", err)
	}

	tableName := u.Host
	pkValue := strings.TrimPrefix(u.Path, "/")

	// dynamodb://tabela/chave?col=schema&pk=id&format=yaml
	colName := u.Query().Get("col")
	if colName == "" {
		colName = "schema"
	}
	pkName := u.Query().Get("pk")
	if pkName == "" {
		pkName = "id"
	}

	client := l.dynamoClient
	if client == nil {
		cfg, err := awsconf.GetAWSConfig(ctx)
		if err != nil {
			return nil, "", err
		}
		client = dynamodb.NewFromConfig(cfg)
	}

	// só a coluna do schema é lida
	expr, err := expression.NewBuilder().
		WithProjection(expression.NamesList(expression.Name(colName))).
		Build()
	if err != nil {
		return nil, "", fmt.Errorf("projeção inválida para a coluna '%s': %w", colName, err)
	}

	out, err := client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &tableName,
		Key: map[string]types.AttributeValue{
			pkName: &types.AttributeValueMemberS{Value: pkValue},
		},
		ProjectionExpression:     expr.Projection(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		return nil, "", err
	}
	if out.Item == nil {
		return nil, "", fmt.Errorf("item não encontrado no DynamoDB")
	}

	var item map[string]interface{}
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, "", err
	}

	content, ok := item[colName].(string)
	if !ok {
		return nil, "", fmt.Errorf("coluna '%s' inválida ou vazia no DynamoDB", colName)
	}
	return []byte(content), u.Query().Get("format"), nil
}

func formatOf(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "json"
}
