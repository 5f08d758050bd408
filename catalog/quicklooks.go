package catalog

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/airbusgeo/up42-go/service"
	"github.com/airbusgeo/up42-go/service/log"
)

// MaxParallelQuicklooks is the number of quicklooks downloaded concurrently
var MaxParallelQuicklooks = 8

// QuicklookPath returns the path of the quicklook of the image in outDir
func QuicklookPath(outDir, imageID string) string {
	return filepath.Join(outDir, "quicklook_"+imageID+".png")
}

// DownloadQuicklooks downloads the low-resolution previews of the images into outDir.
// All the images are tried: the failures are merged into the returned error
// and the paths of the successful downloads are returned anyway.
func (c *Catalog) DownloadQuicklooks(ctx context.Context, host string, imageIDs []string, outDir string) ([]string, error) {
	if host == "" {
		return nil, fmt.Errorf("DownloadQuicklooks: empty host")
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("DownloadQuicklooks.MkdirAll: %w", err)
	}

	imageIDs = service.Unique(imageIDs)
	var mu sync.Mutex
	var files []string
	var errs []error
	g := errgroup.Group{}
	g.SetLimit(MaxParallelQuicklooks)
	for _, id := range imageIDs {
		id := id
		g.Go(func() error {
			ctx := log.With(ctx, zap.String("image", id))
			u := c.session.Endpoint("/catalog/" + url.PathEscape(host) + "/image/" + url.PathEscape(id) + "/quicklook")
			file, err := service.Download(ctx, c.session.HTTPClient(), u, QuicklookPath(outDir, id))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Logger(ctx).Warn("quicklook not downloaded", zap.Error(err))
				errs = append(errs, fmt.Errorf("quicklook[%s]: %w", id, err))
				return nil
			}
			files = append(files, file)
			return nil
		})
	}
	_ = g.Wait()

	sort.Strings(files)
	log.Logger(ctx).Sugar().Infof("%d/%d quicklooks downloaded in %s", len(files), len(imageIDs), outDir)
	if len(errs) > 0 {
		return files, fmt.Errorf("DownloadQuicklooks: %w", service.MergeErrors(true, nil, errs...))
	}
	return files, nil
}
