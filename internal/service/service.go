// Package service defines typed credential bundles for each external
// provider and a registry that lazily builds and caches them from the
// credential store.
package service

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrIncomplete indicates that required credential fields are missing.
var ErrIncomplete = errors.New("incomplete service credentials")

// Source supplies credential values by name. *credential.Store satisfies it.
type Source interface {
	Get(name string) (string, bool)
}

func missing(service string, names ...string) error {
	return fmt.Errorf("%w: %s requires %v", ErrIncomplete, service, names)
}

// Supabase bundles the URL and API key for a Supabase project.
type Supabase struct {
	URL string
	Key string
}

func LoadSupabase(src Source) (Supabase, error) {
	url, okURL := src.Get("SUPABASE_URL")
	key, okKey := src.Get("SUPABASE_KEY")
	if !okURL || !okKey {
		return Supabase{}, missing("supabase", "SUPABASE_URL", "SUPABASE_KEY")
	}
	return Supabase{URL: url, Key: key}, nil
}

// Postgres bundles a direct PostgreSQL connection.
type Postgres struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
}

func LoadPostgres(src Source) (Postgres, error) {
	host, okHost := src.Get("POSTGRES_HOST")
	database, okDB := src.Get("POSTGRES_DATABASE")
	username, okUser := src.Get("POSTGRES_USERNAME")
	password, okPass := src.Get("POSTGRES_PASSWORD")
	if !okHost || !okDB || !okUser || !okPass {
		return Postgres{}, missing("postgres",
			"POSTGRES_HOST", "POSTGRES_DATABASE", "POSTGRES_USERNAME", "POSTGRES_PASSWORD")
	}

	port := 5432
	if p, ok := src.Get("POSTGRES_PORT"); ok {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Postgres{}, fmt.Errorf("postgres: invalid POSTGRES_PORT %q", p)
		}
		port = n
	}
	return Postgres{Host: host, Port: port, Database: database, Username: username, Password: password}, nil
}

// ConnString returns the PostgreSQL connection URL.
func (p Postgres) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%d/%s", p.Username, p.Password, p.Host, p.Port, p.Database)
}

// Mongo bundles a MongoDB connection string and database name.
type Mongo struct {
	ConnString string
	Database   string
}

func LoadMongo(src Source) (Mongo, error) {
	conn, okConn := src.Get("MONGODB_CONNECTION_STRING")
	database, okDB := src.Get("MONGODB_DATABASE")
	if !okConn || !okDB {
		return Mongo{}, missing("mongodb", "MONGODB_CONNECTION_STRING", "MONGODB_DATABASE")
	}
	return Mongo{ConnString: conn, Database: database}, nil
}

// OpenAI bundles an OpenAI API key and optional organization.
type OpenAI struct {
	APIKey string
	OrgID  string
}

func LoadOpenAI(src Source) (OpenAI, error) {
	key, ok := src.Get("OPENAI_API_KEY")
	if !ok {
		return OpenAI{}, missing("openai", "OPENAI_API_KEY")
	}
	org, _ := src.Get("OPENAI_ORGANIZATION_ID")
	return OpenAI{APIKey: key, OrgID: org}, nil
}

// Anthropic bundles an Anthropic API key.
type Anthropic struct {
	APIKey string
}

func LoadAnthropic(src Source) (Anthropic, error) {
	key, ok := src.Get("ANTHROPIC_API_KEY")
	if !ok {
		return Anthropic{}, missing("anthropic", "ANTHROPIC_API_KEY")
	}
	return Anthropic{APIKey: key}, nil
}

// Google bundles a Google API key and optional project.
type Google struct {
	APIKey    string
	ProjectID string
}

func LoadGoogle(src Source) (Google, error) {
	key, ok := src.Get("GOOGLE_API_KEY")
	if !ok {
		return Google{}, missing("google", "GOOGLE_API_KEY")
	}
	project, _ := src.Get("GOOGLE_PROJECT_ID")
	return Google{APIKey: key, ProjectID: project}, nil
}

// GoogleDrive bundles a service-account credentials path and optional folder.
type GoogleDrive struct {
	CredentialsPath string
	FolderID        string
}

func LoadGoogleDrive(src Source) (GoogleDrive, error) {
	path, ok := src.Get("GOOGLE_DRIVE_CREDENTIALS_PATH")
	if !ok {
		return GoogleDrive{}, missing("google drive", "GOOGLE_DRIVE_CREDENTIALS_PATH")
	}
	folder, _ := src.Get("GOOGLE_DRIVE_FOLDER_ID")
	return GoogleDrive{CredentialsPath: path, FolderID: folder}, nil
}

// AWS bundles an access key pair and region.
type AWS struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
}

func LoadAWS(src Source) (AWS, error) {
	id, okID := src.Get("AWS_ACCESS_KEY_ID")
	secret, okSecret := src.Get("AWS_SECRET_ACCESS_KEY")
	if !okID || !okSecret {
		return AWS{}, missing("aws", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY")
	}
	region, ok := src.Get("AWS_REGION")
	if !ok {
		region = "us-east-1"
	}
	return AWS{AccessKeyID: id, SecretAccessKey: secret, Region: region}, nil
}
