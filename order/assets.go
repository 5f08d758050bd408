package order

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/airbusgeo/up42-go/common"
	"github.com/airbusgeo/up42-go/service"
	"github.com/airbusgeo/up42-go/service/log"
	"github.com/airbusgeo/up42-go/session"
)

// MaxParallelDownloads is the number of assets downloaded concurrently
var MaxParallelDownloads = 4

// Asset is a delivered file of an order
type Asset struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	OrderID     string    `json:"orderId"`
	WorkspaceID string    `json:"workspaceId"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Key returns the key of the asset in a service.Storage
func (a Asset) Key() service.AssetKey {
	return service.AssetKey{OrderID: a.OrderID, AssetID: a.ID, Ext: service.GetExt(a.Name)}
}

// Assets returns the assets delivered for the order
func (o *Order) Assets(ctx context.Context, orderID string) ([]Asset, error) {
	var assets []Asset
	err := session.Paginate(ctx, o.session, "/v2/assets", url.Values{"orderId": {orderID}}, 0, func(p common.Page) (int, error) {
		var as []Asset
		if err := p.Decode(&as); err != nil {
			return 0, err
		}
		assets = append(assets, as...)
		return len(as), nil
	})
	if err != nil {
		return nil, fmt.Errorf("Assets[%s]: %w", orderID, err)
	}
	for i := range assets {
		if assets[i].OrderID == "" {
			assets[i].OrderID = orderID
		}
	}
	return assets, nil
}

// downloadURL returns the signed url of the asset
func (o *Order) downloadURL(ctx context.Context, assetID string) (string, error) {
	var response struct {
		URL string `json:"url"`
	}
	if err := o.session.Do(ctx, http.MethodPost, "/v2/assets/"+url.PathEscape(assetID)+"/download-url", nil, &response); err != nil {
		return "", fmt.Errorf("downloadURL[%s]: %w", assetID, err)
	}
	if response.URL == "" {
		return "", fmt.Errorf("downloadURL[%s]: empty url", assetID)
	}
	return response.URL, nil
}

// downloadAsset downloads the asset into localDir/Key().FileName()
func (o *Order) downloadAsset(ctx context.Context, asset Asset, localDir string) (string, error) {
	signedURL, err := o.downloadURL(ctx, asset.ID)
	if err != nil {
		return "", err
	}
	// Signed urls must not be sent with the session token
	file, err := service.Download(ctx, nil, signedURL, filepath.Join(localDir, asset.Key().FileName()))
	if err != nil {
		return "", fmt.Errorf("downloadAsset[%s]: %w", asset.ID, err)
	}
	return file, nil
}

// forEachAsset calls fn concurrently on every asset of the order
func (o *Order) forEachAsset(ctx context.Context, orderID string, fn func(context.Context, Asset) ([]string, error)) ([]string, error) {
	assets, err := o.Assets(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, fmt.Errorf("order %s has no asset", orderID)
	}

	var mu sync.Mutex
	var files []string
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxParallelDownloads)
	for _, asset := range assets {
		asset := asset
		g.Go(func() error {
			res, err := fn(log.With(gctx, zap.String("asset", asset.ID)), asset)
			if err != nil {
				return err
			}
			mu.Lock()
			files = append(files, res...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// DownloadAssets downloads all the assets of the order into localDir and returns the paths of the files.
// If unpack, zip and tgz archives are extracted into localDir/<asset id> and removed.
func (o *Order) DownloadAssets(ctx context.Context, orderID, localDir string, unpack bool) ([]string, error) {
	if err := os.MkdirAll(localDir, 0755); err != nil {
		return nil, fmt.Errorf("DownloadAssets.MkdirAll: %w", err)
	}
	files, err := o.forEachAsset(ctx, orderID, func(ctx context.Context, asset Asset) ([]string, error) {
		file, err := o.downloadAsset(ctx, asset, localDir)
		if err != nil {
			return nil, err
		}
		ext := service.GetExt(file)
		if !unpack || (ext != service.ExtensionZIP && ext != service.ExtensionTGZ) {
			return []string{file}, nil
		}
		assetDir := filepath.Join(localDir, asset.ID)
		if err := os.MkdirAll(assetDir, 0755); err != nil {
			return nil, fmt.Errorf("DownloadAssets.MkdirAll: %w", err)
		}
		defer os.Remove(file)
		extracted, err := service.Unarchive(file, assetDir)
		if err != nil {
			return nil, fmt.Errorf("DownloadAssets[%s]: %w", asset.ID, err)
		}
		log.Logger(ctx).Sugar().Debugf("%d files extracted in %s", len(extracted), assetDir)
		return extracted, nil
	})
	if err != nil {
		return nil, fmt.Errorf("DownloadAssets[%s]: %w", orderID, err)
	}
	return files, nil
}

// SaveAssets downloads all the assets of the order and saves them in the storage.
// It returns the uris of the saved assets.
func (o *Order) SaveAssets(ctx context.Context, orderID, workingDir string, storage service.Storage) ([]string, error) {
	tmpDir, err := os.MkdirTemp(workingDir, orderID)
	if err != nil {
		return nil, fmt.Errorf("SaveAssets.MkdirTemp: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	uris, err := o.forEachAsset(ctx, orderID, func(ctx context.Context, asset Asset) ([]string, error) {
		if _, err := o.downloadAsset(ctx, asset, tmpDir); err != nil {
			return nil, err
		}
		uri, err := storage.SaveAsset(ctx, asset.Key(), tmpDir)
		if err != nil {
			return nil, fmt.Errorf("SaveAssets[%s]: %w", asset.ID, err)
		}
		log.Logger(ctx).Sugar().Infof("asset saved in %s", uri)
		return []string{uri}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("SaveAssets[%s]: %w", orderID, err)
	}
	return uris, nil
}
