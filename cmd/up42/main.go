package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/airbusgeo/geocube/interface/messaging"
	"github.com/airbusgeo/geocube/interface/messaging/pgqueue"
	"github.com/airbusgeo/geocube/interface/messaging/pubsub"
	"go.uber.org/zap"

	"github.com/airbusgeo/up42-go/catalog"
	"github.com/airbusgeo/up42-go/order"
	"github.com/airbusgeo/up42-go/service/log"
	"github.com/airbusgeo/up42-go/service/mockapi"
	"github.com/airbusgeo/up42-go/session"
	"github.com/airbusgeo/up42-go/tasking"
)

type messagingConfig struct {
	PsProject       string
	PsTopic         string
	PsSubscription  string
	PgqDbConnection string
}

type config struct {
	Command     string
	Credentials session.Credentials
	Environment string
	Endpoint    string
	RateLimit   int
	DryRun      bool

	// Search
	Host          string
	Collections   []string
	MaxCloudCover float64
	Limit         int
	SortBy        string
	Quicklooks    bool

	// Tasking & orders
	AOI           string
	Start         string
	End           string
	DataProduct   string
	Name          string
	OrderID       string
	QuotationID   string
	FeasibilityID string
	OptionID      string
	Decision      string
	Track         bool
	Interval      time.Duration

	// Deliveries
	WorkingDir string
	StorageURI string
	Unpack     bool

	Messaging messagingConfig
}

func newAppConfig() (*config, error) {
	config := config{}
	credentials := flag.String("credentials", "", "yaml or json file with the credentials (project_id, project_api_key or username, password)")
	flag.StringVar(&config.Credentials.ProjectID, "project-id", "", "project id (overrides the credentials file)")
	flag.StringVar(&config.Credentials.ProjectAPIKey, "project-api-key", "", "project api key (overrides the credentials file)")
	flag.StringVar(&config.Credentials.Username, "username", "", "account username (overrides the credentials file)")
	flag.StringVar(&config.Credentials.Password, "password", "", "account password (overrides the credentials file)")
	flag.StringVar(&config.Credentials.WorkspaceID, "workspace-id", "", "workspace (default: the workspace of the account)")
	flag.StringVar(&config.Environment, "env", session.EnvCom, "environment of the remote API (com, eu)")
	flag.StringVar(&config.Endpoint, "endpoint", "", "url of the remote API (optional)")
	flag.IntVar(&config.RateLimit, "rate-limit", 10, "maximum number of requests per second (0: no limit)")
	flag.BoolVar(&config.DryRun, "dry-run", false, "run the command against an in-memory fake of the remote API")

	flag.StringVar(&config.Host, "host", mockapi.Host, "catalog host")
	collections := flag.String("collections", "", "comma-separated list of collections")
	flag.Float64Var(&config.MaxCloudCover, "max-cloud-cover", 100, "maximum cloud cover (percent)")
	flag.IntVar(&config.Limit, "limit", catalog.DefaultLimit, "maximum number of results")
	flag.StringVar(&config.SortBy, "sort-by", "", "sort the results by acquisitionDate, cloudCoverage or resolution (prefix with '-' for descending order)")
	flag.BoolVar(&config.Quicklooks, "quicklooks", false, "download the quicklooks of the scenes found (requires workdir)")

	flag.StringVar(&config.AOI, "aoi", "", "area of interest: WKT, geojson or path to a geojson file")
	flag.StringVar(&config.Start, "start", "", "start of the period (YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS)")
	flag.StringVar(&config.End, "end", "", "end of the period (YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS)")
	flag.StringVar(&config.DataProduct, "data-product", "", "data product id")
	flag.StringVar(&config.Name, "name", "", "name of the order")
	flag.StringVar(&config.OrderID, "order-id", "", "order id")
	flag.StringVar(&config.QuotationID, "quotation-id", "", "quotation id")
	flag.StringVar(&config.FeasibilityID, "feasibility-id", "", "feasibility study id")
	flag.StringVar(&config.OptionID, "option-id", "", "feasibility option id")
	flag.StringVar(&config.Decision, "decision", "", "decision on the quotation (ACCEPTED, REJECTED), or filter on the decision (quotations)")
	flag.BoolVar(&config.Track, "track", false, "track the status of the order until it is final")
	flag.DurationVar(&config.Interval, "interval", order.DefaultTrackingInterval, "interval between two status requests")

	flag.StringVar(&config.WorkingDir, "workdir", "", "working directory to store the results and the deliveries")
	flag.StringVar(&config.StorageURI, "storage-uri", "", "storage (local, gs:// or s3://) where the deliveries are saved (optional)")
	flag.BoolVar(&config.Unpack, "unpack", true, "unpack the delivered archives")

	flag.StringVar(&config.Messaging.PsProject, "psProject", "", "pubsub project (gcp only/not required in local usage)")
	flag.StringVar(&config.Messaging.PsTopic, "psTopic", "", "pubsub topic where the status of the orders are published (optional)")
	flag.StringVar(&config.Messaging.PsSubscription, "psSubscription", "", "pubsub subscription to watch the status of the orders")
	flag.StringVar(&config.Messaging.PgqDbConnection, "pgqConnection", "", "database connection for pgqueue messaging (instead of pubsub)")
	flag.Parse()

	config.Command = flag.Arg(0)
	if config.Command == "" {
		return nil, fmt.Errorf("missing command (%s)", strings.Join(commandNames(), ", "))
	}
	if *collections != "" {
		config.Collections = strings.Split(*collections, ",")
	}
	if *credentials != "" {
		creds, err := session.ReadCredentials(*credentials)
		if err != nil {
			return nil, err
		}
		config.Credentials = config.Credentials.Merge(creds)
		if err := config.Credentials.Validate(); err != nil {
			return nil, fmt.Errorf("credentials: %w", err)
		}
	}
	return &config, nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	err := run(ctx)
	if err != nil {
		log.Fatal("error", zap.Error(err))
	}
}

// app gathers the feature modules sharing the same session
type app struct {
	session *session.Session
	tasking *tasking.Tasking
	order   *order.Order
	catalog *catalog.Catalog
}

func run(ctx context.Context) error {
	config, err := newAppConfig()
	if err != nil {
		return err
	}
	cmd, ok := commands[config.Command]
	if !ok {
		return fmt.Errorf("unknown command %s (%s)", config.Command, strings.Join(commandNames(), ", "))
	}

	opts := []session.Option{session.WithEnvironment(config.Environment), session.WithRateLimit(config.RateLimit)}
	if config.Endpoint != "" {
		opts = append(opts, session.WithEndpoint(config.Endpoint))
	}
	if config.DryRun {
		srv := newDryRunServer()
		defer srv.Close()
		opts = append(opts, session.WithEndpoint(srv.URL))
		config.Credentials = session.Credentials{ProjectID: mockapi.ProjectID, ProjectAPIKey: mockapi.ProjectAPIKey}
		log.Logger(ctx).Info("dry run on " + srv.URL)
	}

	s, err := session.New(ctx, config.Credentials, opts...)
	if err != nil {
		return err
	}
	defer s.Close()
	log.Logger(ctx).Debug(s.String())

	a := app{
		session: s,
		tasking: tasking.New(s),
		order:   order.New(s),
		catalog: catalog.New(s),
	}
	return cmd(log.With(ctx, zap.String("command", config.Command)), a, config)
}

// newDryRunServer starts a fake of the remote API with a few scenes
func newDryRunServer() *mockapi.Server {
	srv := mockapi.New()
	srv.StatusSequence = []string{"PLACED", "BEING_FULFILLED", "DOWNLOADED", "FULFILLED"}
	date := time.Date(2026, 1, 1, 10, 30, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		x := 2 + float64(i%4)*0.1
		srv.AddScene(fmt.Sprintf("DS_PHR1A_202601%02d103000_FR1_PX_E002N48_0101_00001", i+1), "phr",
			date.AddDate(0, 0, i), float64(i*8%100), [4]float64{x, 48, x + 0.2, 48.2})
	}
	return srv
}

// newStatusPublisher returns the publisher configured by the messaging flags or nil.
// The returned function must be called to release the resources.
func newStatusPublisher(ctx context.Context, config messagingConfig) (messaging.Publisher, func(), error) {
	switch {
	case config.PsTopic == "":
		return nil, func() {}, nil
	case config.PgqDbConnection != "":
		_, w, err := pgqueue.SqlConnect(ctx, config.PgqDbConnection)
		if err != nil {
			return nil, nil, fmt.Errorf("MessagingService: %w", err)
		}
		log.Logger(ctx).Debug("publishing status on pgqueue:" + config.PsTopic)
		return pgqueue.NewPublisher(w, config.PsTopic, pgqueue.WithMaxRetries(5)), func() {}, nil
	default:
		publisher, err := pubsub.NewPublisher(ctx, config.PsProject, config.PsTopic, pubsub.WithMaxRetries(5))
		if err != nil {
			return nil, nil, fmt.Errorf("pubsub.NewPublisher: %w", err)
		}
		log.Logger(ctx).Debug(fmt.Sprintf("publishing status on pubsub:%s/%s", config.PsProject, config.PsTopic))
		return publisher, func() { publisher.Stop() }, nil
	}
}

// newStatusConsumer returns the consumer configured by the messaging flags.
// The returned function must be called to release the resources.
func newStatusConsumer(ctx context.Context, config messagingConfig) (messaging.Consumer, func(), error) {
	switch {
	case config.PsSubscription == "":
		return nil, nil, fmt.Errorf("missing psSubscription config flag")
	case config.PgqDbConnection != "":
		db, _, err := pgqueue.SqlConnect(ctx, config.PgqDbConnection)
		if err != nil {
			return nil, nil, fmt.Errorf("MessagingService: %w", err)
		}
		consumer := pgqueue.NewConsumer(db, config.PsSubscription)
		return consumer, func() { consumer.Stop() }, nil
	default:
		consumer, err := pubsub.NewConsumer(config.PsProject, config.PsSubscription)
		if err != nil {
			return nil, nil, fmt.Errorf("pubsub.NewConsumer: %w", err)
		}
		return consumer, func() {}, nil
	}
}
