package firebase

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"dukkan/pkg/config"
	"dukkan/pkg/logger"
)

// ClientOptions picks credentials from inline JSON, then a key file, then the ambient
// application default credentials.
func ClientOptions(cfg *config.Config) []option.ClientOption {
	if cfg.FirebaseServiceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment")
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccountJSON))}
	}
	if cfg.FirebaseServiceAccountPath != "" {
		if _, err := os.Stat(cfg.FirebaseServiceAccountPath); err == nil {
			logger.Info("Using Firebase service account file %s", cfg.FirebaseServiceAccountPath)
			return []option.ClientOption{option.WithCredentialsFile(cfg.FirebaseServiceAccountPath)}
		}
		logger.Warn("Service account file %s not found, using default credentials", cfg.FirebaseServiceAccountPath)
	}
	return nil
}

// App bundles the Firebase app with the Firestore client opened from it.
type App struct {
	App       *fbapp.App
	Firestore *firestore.Client
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	opts := ClientOptions(cfg)

	app, err := fbapp.NewApp(ctx, &fbapp.Config{
		ProjectID:     cfg.FirebaseProject,
		StorageBucket: cfg.StorageBucket,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %v", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error initializing firestore: %v", err)
	}

	return &App{App: app, Firestore: client}, nil
}

func (a *App) Close() error {
	return a.Firestore.Close()
}
