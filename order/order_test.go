package order_test

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/encoding/geojson"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/airbusgeo/up42-go/common"
	"github.com/airbusgeo/up42-go/order"
	"github.com/airbusgeo/up42-go/service"
	"github.com/airbusgeo/up42-go/service/mockapi"
	"github.com/airbusgeo/up42-go/session"
)

func validParameters() order.Parameters {
	return order.Parameters{
		DataProduct: mockapi.DataProductID,
		DisplayName: "my order",
		Params: map[string]interface{}{
			"displayName":      "my order",
			"acquisitionStart": "2026-01-01T00:00:00Z",
			"acquisitionEnd":   "2026-01-31T23:59:59Z",
		},
		FeatureCollection: &geojson.FeatureCollection{Features: []geojson.Feature{{
			Geometry:   geojson.Geometry{Geometry: geom.Polygon{{{2, 48}, {3, 48}, {3, 49}, {2, 49}, {2, 48}}}},
			Properties: map[string]interface{}{},
		}}},
	}
}

var _ = Describe("Order", func() {
	var (
		ctx context.Context
		srv *mockapi.Server
		s   *session.Session
		o   *order.Order
	)

	BeforeEach(func() {
		ctx = context.Background()
		srv = mockapi.New()
		srv.Authorize("abc")
		s = session.FromToken("abc", mockapi.WorkspaceID, session.WithEndpoint(srv.URL))
		o = order.New(s)
	})

	AfterEach(func() {
		srv.Close()
	})

	Describe("constructing the module", func() {
		It("should embed the representation of the session", func() {
			Expect(o.String()).To(Equal("Order(session=" + s.String() + ")"))
			Expect(o.String()).To(Equal(o.String()))
			Expect(o.Session()).To(BeIdenticalTo(s))
		})
		It("should not send any request", func() {
			_ = order.New(s).String()
			Expect(srv.Requests()).To(BeEmpty())
		})
	})

	Describe("estimating an order", func() {
		It("should return the price", func() {
			estimate, err := o.Estimate(ctx, validParameters())
			Expect(err).NotTo(HaveOccurred())
			Expect(estimate.Summary.TotalCredits).To(Equal(250.))
			Expect(estimate.Summary.Unit).To(Equal("SQ_KM"))
		})
		It("should map the errors reported in the response", func() {
			params := validParameters()
			params.DataProduct = "unknown"
			_, err := o.Estimate(ctx, params)
			var rerr service.ErrRemoteRequest
			Expect(errors.As(err, &rerr)).To(BeTrue())
			Expect(rerr.Status).To(Equal(http.StatusBadRequest))
			Expect(rerr.Message).To(ContainSubstring("unknown data product"))
		})
		It("should validate the parameters locally", func() {
			_, err := o.Estimate(ctx, order.Parameters{})
			Expect(err).To(HaveOccurred())
			Expect(srv.Requests()).To(BeEmpty())
		})
	})

	Describe("placing an order", func() {
		It("should return the created order", func() {
			info, err := o.Place(ctx, validParameters())
			Expect(err).NotTo(HaveOccurred())
			Expect(info.ID).NotTo(BeEmpty())
			Expect(info.WorkspaceID).To(Equal(mockapi.WorkspaceID))
			Expect(info.DisplayName).To(Equal("my order"))
			Expect(info.Status).To(Equal(common.OrderPLACED))
		})
		It("should fail without geometry", func() {
			params := validParameters()
			params.FeatureCollection = nil
			_, err := o.Place(ctx, params)
			status, ok := service.RemoteStatus(err)
			Expect(ok).To(BeTrue())
			Expect(status).To(Equal(http.StatusBadRequest))
		})
		It("should fail to get an unknown order", func() {
			_, err := o.Get(ctx, "c0ffee00-0000-4000-8000-00000000dead")
			status, ok := service.RemoteStatus(err)
			Expect(ok).To(BeTrue())
			Expect(status).To(Equal(http.StatusNotFound))
		})
	})

	Describe("listing orders", func() {
		BeforeEach(func() {
			for i := 0; i < 3; i++ {
				_, err := o.Place(ctx, validParameters())
				Expect(err).NotTo(HaveOccurred())
			}
		})
		It("should return all the orders of the workspace", func() {
			orders, err := o.List(ctx, order.ListFilter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(orders).To(HaveLen(3))
		})
		It("should apply the limit", func() {
			orders, err := o.List(ctx, order.ListFilter{Limit: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(orders).To(HaveLen(2))
		})
		It("should filter by workspace", func() {
			orders, err := o.List(ctx, order.ListFilter{WorkspaceID: "other"})
			Expect(err).NotTo(HaveOccurred())
			Expect(orders).To(BeEmpty())
		})
	})

	Describe("tracking an order", func() {
		var transitions []common.OrderStatus
		listener := func(ctx context.Context, info order.Info, previous common.OrderStatus) error {
			transitions = append(transitions, info.Status)
			return nil
		}

		BeforeEach(func() {
			transitions = nil
		})

		It("should stop when the order is fulfilled", func() {
			info, err := o.Place(ctx, validParameters())
			Expect(err).NotTo(HaveOccurred())
			status, err := o.TrackStatus(ctx, info.ID, 10*time.Millisecond, listener)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(common.OrderFULFILLED))
			Expect(transitions).To(Equal([]common.OrderStatus{common.OrderBEING_FULFILLED, common.OrderFULFILLED}))
		})
		It("should notify each transition only once", func() {
			srv.StatusSequence = []string{"PLACED", "PLACED", "BEING_FULFILLED", "BEING_FULFILLED", "FULFILLED"}
			info, err := o.Place(ctx, validParameters())
			Expect(err).NotTo(HaveOccurred())
			_, err = o.TrackStatus(ctx, info.ID, time.Millisecond, listener)
			Expect(err).NotTo(HaveOccurred())
			Expect(transitions).To(Equal([]common.OrderStatus{common.OrderPLACED, common.OrderBEING_FULFILLED, common.OrderFULFILLED}))
		})
		It("should fail when the order fails", func() {
			srv.StatusSequence = []string{"PLACED", "DOWNLOAD_FAILED", "FAILED_PERMANENTLY"}
			info, err := o.Place(ctx, validParameters())
			Expect(err).NotTo(HaveOccurred())
			status, err := o.TrackStatus(ctx, info.ID, time.Millisecond, nil)
			Expect(errors.Is(err, order.ErrOrderFailed)).To(BeTrue())
			Expect(status).To(Equal(common.OrderFAILED_PERMANENTLY))
		})
		It("should stop when the context is done", func() {
			srv.StatusSequence = []string{"PLACED"}
			info, err := o.Place(ctx, validParameters())
			Expect(err).NotTo(HaveOccurred())
			cctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
			defer cancel()
			status, err := o.TrackStatus(cctx, info.ID, 10*time.Millisecond, nil)
			Expect(errors.Is(err, context.DeadlineExceeded)).To(BeTrue())
			Expect(status).To(Equal(common.OrderPLACED))
		})
	})

	Describe("downloading the assets", func() {
		var (
			info order.Info
			dir  string
		)

		BeforeEach(func() {
			var err error
			info, err = o.Place(ctx, validParameters())
			Expect(err).NotTo(HaveOccurred())
			dir, err = os.MkdirTemp("", "assets")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			os.RemoveAll(dir)
		})

		It("should list the assets", func() {
			assets, err := o.Assets(ctx, info.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(assets).To(HaveLen(1))
			Expect(assets[0].OrderID).To(Equal(info.ID))
			Expect(assets[0].Key().Ext).To(Equal(service.ExtensionZIP))
		})
		It("should download the archives", func() {
			files, err := o.DownloadAssets(ctx, info.ID, dir, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(files).To(HaveLen(1))
			Expect(filepath.Ext(files[0])).To(Equal(".zip"))
			Expect(files[0]).To(BeARegularFile())
		})
		It("should unpack the archives", func() {
			files, err := o.DownloadAssets(ctx, info.ID, dir, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(files).To(HaveLen(2))
			for _, f := range files {
				Expect(f).To(BeARegularFile())
			}
			Expect(filepath.Base(files[0])).To(Equal("image.tif"))
			Expect(filepath.Base(files[1])).To(Equal("metadata.json"))
		})
		It("should save the assets in a storage", func() {
			dst, err := os.MkdirTemp("", "storage")
			Expect(err).NotTo(HaveOccurred())
			defer os.RemoveAll(dst)
			storage, err := service.NewStorageStrategy(ctx, dst)
			Expect(err).NotTo(HaveOccurred())

			uris, err := o.SaveAssets(ctx, info.ID, dir, storage)
			Expect(err).NotTo(HaveOccurred())
			Expect(uris).To(HaveLen(1))
			Expect(uris[0]).To(BeARegularFile())
		})
		It("should fail for an unknown order", func() {
			_, err := o.DownloadAssets(ctx, "unknown", dir, false)
			Expect(err).To(HaveOccurred())
		})
	})
})
