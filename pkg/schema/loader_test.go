package schema

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockS3Loader struct {
	GetObjectFunc func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

func (m *MockS3Loader) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return m.GetObjectFunc(ctx, params, optFns...)
}

type MockDynamoLoader struct {
	GetItemFunc func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

func (m *MockDynamoLoader) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return m.GetItemFunc(ctx, params, optFns...)
}

const jsonSchema = `[
  {"/users/:id": {"id": "random.number", "name": "name.firstName"}},
  {"/posts/:id": {"LIST": 3, "JOIN": "/users/:id", "title": "lorem.sentence"}}
]`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_Local(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		path := writeTemp(t, "backend.json", jsonSchema)

		s, err := Load(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, []string{"/users/:id", "/posts/:id"}, s.Paths())

		posts, ok := s.Find("/posts/:id")
		require.True(t, ok)
		assert.Equal(t, float64(3), posts.Fields["LIST"])
	})

	t.Run("YAML com prefixo file://", func(t *testing.T) {
		path := writeTemp(t, "backend.yaml", `
- /users/:id:
    id: random.number
    address:
      city: address.city
- /posts:
    LIST: 2
`)
		s, err := Load(context.Background(), "file://"+path)
		require.NoError(t, err)
		require.Len(t, s, 2)

		users, _ := s.Find("/users/:id")
		assert.Equal(t, "address.city", users.Fields["address"].(map[string]any)["city"])
	})

	t.Run("Arquivo inexistente", func(t *testing.T) {
		_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestDecode_Invalid(t *testing.T) {
	cases := map[string]string{
		"JSON malformado":          `[{"/a": `,
		"Objeto no lugar de lista": `{"/a": {}}`,
		"Duas chaves por rota":     `[{"/a": {}, "/b": {}}]`,
		"Rota duplicada":           `[{"/a": {}}, {"/a": {}}]`,
		"Null":                     `null`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(raw), "json")
			assert.Error(t, err)
		})
	}
}

func TestLoader_S3(t *testing.T) {
	mockClient := &MockS3Loader{
		GetObjectFunc: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
			assert.Equal(t, "my-bucket", *params.Bucket)
			assert.Equal(t, "schemas/backend.json", *params.Key)
			return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(jsonSchema))}, nil
		},
	}

	s, err := NewLoader(WithS3Client(mockClient)).Load(context.Background(), "s3://my-bucket/schemas/backend.json")
	require.NoError(t, err)
	assert.Len(t, s, 2)
}

func TestLoader_S3_Error(t *testing.T) {
	mockClient := &MockS3Loader{
		GetObjectFunc: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
			return nil, errors.New("access denied")
		},
	}

	_, err := NewLoader(WithS3Client(mockClient)).Load(context.Background(), "s3://b/k.json")
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "s3://b/k.json", loadErr.Source)
}

func TestLoader_DynamoDB(t *testing.T) {
	mockClient := &MockDynamoLoader{
		GetItemFunc: func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
			assert.Equal(t, "Schemas", *params.TableName)
			key := params.Key["Name"].(*types.AttributeValueMemberS).Value
			assert.Equal(t, "shop", key)
			require.NotNil(t, params.ProjectionExpression)
			assert.Contains(t, params.ExpressionAttributeNames, *params.ProjectionExpression)
			assert.Equal(t, "body", params.ExpressionAttributeNames[*params.ProjectionExpression])
			return &dynamodb.GetItemOutput{
				Item: map[string]types.AttributeValue{
					"Name": &types.AttributeValueMemberS{Value: "shop"},
					"body": &types.AttributeValueMemberS{Value: "- /items:\n    name: lorem.word\n"},
				},
			}, nil
		},
	}

	s, err := NewLoader(WithDynamoClient(mockClient)).Load(context.Background(), "dynamodb://Schemas/shop?pk=Name&col=body&format=yaml")
	require.NoError(t, err)
	require.Len(t, s, 1)
	assert.Equal(t, "/items", s[0].Path)
}

func TestLoader_DynamoDB_ItemNotFound(t *testing.T) {
	mockClient := &MockDynamoLoader{
		GetItemFunc: func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{}, nil
		},
	}

	_, err := NewLoader(WithDynamoClient(mockClient)).Load(context.Background(), "dynamodb://Schemas/none")
	assert.ErrorContains(t, err, "não encontrado")
}
