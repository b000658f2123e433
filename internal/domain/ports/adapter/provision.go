// File: internal/domain/ports/adapter/provision.go
package adapter

import (
	"context"

	"vaultvpn-bot/internal/domain/model"
)

// KeyProvisioner mints access keys against a region's management endpoint.
type KeyProvisioner interface {
	// CreateKey creates a key and sets its data limit. ownerLabel is the
	// human-readable name recorded on the remote server.
	CreateKey(ctx context.Context, region model.Region, ownerLabel string, quotaBytes int64) (*model.IssuedAccess, error)
}
