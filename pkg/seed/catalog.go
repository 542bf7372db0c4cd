// Package seed carrega o cardápio público a partir de um documento de
// catálogo (YAML ou JSON), local ou no S3.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"gopkg.in/yaml.v3"
)

// S3Client interface para Mock
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// CategorySpec é uma categoria do catálogo; Ref é a chave usada pelos itens.
type CategorySpec struct {
	Ref         string `yaml:"ref" json:"ref"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	ImageURL    string `yaml:"imageUrl" json:"imageUrl"`
	IsActive    *bool  `yaml:"isActive" json:"isActive"`
}

type BlendSpec struct {
	Ref         string `yaml:"ref" json:"ref"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	IsActive    *bool  `yaml:"isActive" json:"isActive"`
}

// MenuItemSpec referencia categoria e blends pelo Ref (ou pelo nome).
type MenuItemSpec struct {
	Name        string   `yaml:"name" json:"name"`
	Price       int64    `yaml:"price" json:"price"`
	Category    string   `yaml:"category" json:"category"`
	Blends      []string `yaml:"blends" json:"blends"`
	Description string   `yaml:"description" json:"description"`
	Recipe      string   `yaml:"recipe" json:"recipe"`
	ImageURL    string   `yaml:"imageUrl" json:"imageUrl"`
	Thumbnail   string   `yaml:"thumbnail" json:"thumbnail"`
	IsActive    *bool    `yaml:"isActive" json:"isActive"`
}

// Catalog é o documento de seed.
type Catalog struct {
	Categories []CategorySpec `yaml:"categories" json:"categories"`
	Blends     []BlendSpec    `yaml:"blends" json:"blends"`
	MenuItems  []MenuItemSpec `yaml:"menuItems" json:"menuItems"`
}

// Parse decodifica o catálogo; format é "json", "yaml" ou "yml".
func Parse(data []byte, format string) (*Catalog, error) {
	var c Catalog
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "json":
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("seed: parse json catalog: %w", err)
		}
	case "yaml", "yml", "":
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("seed: parse yaml catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("seed: unsupported catalog format %q", format)
	}
	return &c, nil
}

// Open lê o catálogo de um caminho local ou de s3://bucket/key. O formato
// vem da extensão.
func Open(ctx context.Context, location string, client S3Client) (*Catalog, error) {
	var data []byte
	var err error

	if bucket, key, ok := parseS3URI(location); ok {
		if client == nil {
			return nil, fmt.Errorf("seed: s3 client required for %s", location)
		}
		data, err = readS3(ctx, client, bucket, key)
	} else {
		data, err = os.ReadFile(location)
	}
	if err != nil {
		return nil, fmt.Errorf("seed: read catalog %s: %w", location, err)
	}
	return Parse(data, path.Ext(location))
}

func parseS3URI(location string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(location, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

func readS3(ctx context.Context, client S3Client, bucket, key string) ([]byte, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}
