package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/airbusgeo/geocube/interface/messaging"
	"github.com/pterm/pterm"
	"go.uber.org/zap"

	"github.com/airbusgeo/up42-go/catalog"
	"github.com/airbusgeo/up42-go/common"
	statusmessaging "github.com/airbusgeo/up42-go/interface/messaging"
	"github.com/airbusgeo/up42-go/order"
	"github.com/airbusgeo/up42-go/service"
	"github.com/airbusgeo/up42-go/service/log"
	"github.com/airbusgeo/up42-go/tasking"
)

type command func(ctx context.Context, a app, config *config) error

var commands = map[string]command{
	"balance":       balance,
	"collections":   collections,
	"search":        search,
	"estimate":      estimate,
	"order":         placeOrder,
	"orders":        listOrders,
	"track":         track,
	"watch":         watch,
	"quotations":    quotations,
	"decide":        decide,
	"feasibilities": feasibilities,
	"choose":        choose,
	"download":      download,
}

func commandNames() []string {
	var names []string
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func printJSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("printJSON: %w", err)
	}
	fmt.Println(string(b))
	return nil
}

// readAOI returns the content of the file if aoi is a path or an uri (gs://, s3://), aoi otherwise
func readAOI(ctx context.Context, aoi string) (interface{}, error) {
	if aoi == "" {
		return nil, fmt.Errorf("missing aoi config flag")
	}
	if _, err := os.Stat(aoi); err == nil || strings.Contains(aoi, "://") {
		return service.ReadFile(ctx, aoi)
	}
	return aoi, nil
}

func balance(ctx context.Context, a app, config *config) error {
	account, err := a.session.Account(ctx)
	if err != nil {
		return err
	}
	credits, err := a.session.CreditsBalance(ctx)
	if err != nil {
		return err
	}
	pterm.Info.Printf("%s (%s): %.0f credits\n", account.Email, account.ID, credits)
	return nil
}

func collections(ctx context.Context, a app, config *config) error {
	cs, err := a.catalog.Collections(ctx)
	if err != nil {
		return err
	}
	products, err := a.catalog.DataProducts(ctx)
	if err != nil {
		return err
	}
	return printJSON(map[string]interface{}{"collections": cs, "dataProducts": products})
}

func search(ctx context.Context, a app, config *config) error {
	aoi, err := readAOI(ctx, config.AOI)
	if err != nil {
		return err
	}
	params, err := catalog.SearchParameters(aoi, config.Start, config.End, config.Collections, config.MaxCloudCover, config.Limit, config.SortBy)
	if err != nil {
		return err
	}
	fc, err := a.catalog.Search(ctx, config.Host, params)
	if err != nil {
		return err
	}
	scenes, err := catalog.Scenes(fc)
	if err != nil {
		return err
	}
	if len(scenes) == 0 {
		pterm.Info.Println("No scene found.")
	} else {
		table := pterm.TableData{{"ID", "COLLECTION", "DATETIME", "CLOUD COVER"}}
		for _, s := range scenes {
			table = append(table, []string{s.ID, s.Collection, s.Datetime.Format(service.TimeLayout), fmt.Sprintf("%.1f%%", s.CloudCover)})
		}
		_ = pterm.DefaultTable.WithHasHeader().WithData(table).Render()
	}
	if err := service.ToJSON(fc, config.WorkingDir, "search_results.json"); err != nil {
		return err
	}
	if config.Quicklooks {
		if config.WorkingDir == "" {
			return fmt.Errorf("missing workdir config flag")
		}
		ids := make([]string, len(scenes))
		for i, s := range scenes {
			ids[i] = s.ID
		}
		files, err := a.catalog.DownloadQuicklooks(ctx, config.Host, ids, config.WorkingDir)
		log.Logger(ctx).Sugar().Infof("%d quicklooks downloaded", len(files))
		if err != nil {
			return err
		}
	}
	return nil
}

func orderParameters(ctx context.Context, a app, config *config) (order.Parameters, error) {
	aoi, err := readAOI(ctx, config.AOI)
	if err != nil {
		return order.Parameters{}, err
	}
	name := config.Name
	if name == "" {
		name = "order " + config.Start
	}
	return a.tasking.OrderParameters(ctx, config.DataProduct, name, config.Start, config.End, aoi)
}

func estimate(ctx context.Context, a app, config *config) error {
	params, err := orderParameters(ctx, a, config)
	if err != nil {
		return err
	}
	e, err := a.order.Estimate(ctx, params)
	if err != nil {
		return err
	}
	pterm.Info.Printf("%.0f credits (%.2f %s)\n", e.Summary.TotalCredits, e.Summary.TotalSize, e.Summary.Unit)
	return nil
}

func placeOrder(ctx context.Context, a app, config *config) error {
	params, err := orderParameters(ctx, a, config)
	if err != nil {
		return err
	}
	info, err := a.order.Place(ctx, params)
	if err != nil {
		return err
	}
	if err := printJSON(info); err != nil {
		return err
	}
	if !config.Track {
		return nil
	}
	config.OrderID = info.ID
	return track(ctx, a, config)
}

func listOrders(ctx context.Context, a app, config *config) error {
	infos, err := a.order.List(ctx, order.ListFilter{Limit: config.Limit})
	if err != nil {
		return err
	}
	table := pterm.TableData{{"ID", "STATUS", "CREATED", "NAME"}}
	for _, info := range infos {
		table = append(table, []string{info.ID, statusColor(info.Status).Sprint(info.Status), info.CreatedAt.Format(service.TimeLayout), info.DisplayName})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
}

func track(ctx context.Context, a app, config *config) error {
	if config.OrderID == "" {
		return fmt.Errorf("missing order-id config flag")
	}
	publisher, release, err := newStatusPublisher(ctx, config.Messaging)
	if err != nil {
		return err
	}
	defer release()
	var listener order.StatusListener
	if publisher != nil {
		listener = statusmessaging.NewStatusListener(publisher)
	}
	status, err := a.order.TrackStatus(ctx, config.OrderID, config.Interval, listener)
	if err != nil {
		return err
	}
	if status.Failed() {
		pterm.Error.Printf("Order %s: %s\n", config.OrderID, statusColor(status).Sprint(status))
		return nil
	}
	pterm.Success.Printf("Order %s: %s\n", config.OrderID, statusColor(status).Sprint(status))
	return nil
}

func statusColor(s common.OrderStatus) pterm.Color {
	switch s.Color() {
	case "gray":
		return pterm.FgGray
	case "blue":
		return pterm.FgBlue
	case "orange":
		return pterm.FgYellow
	case "green":
		return pterm.FgGreen
	case "red":
		return pterm.FgRed
	}
	return pterm.FgWhite
}

// watch logs the status events published by track
func watch(ctx context.Context, a app, config *config) error {
	consumer, release, err := newStatusConsumer(ctx, config.Messaging)
	if err != nil {
		return err
	}
	defer release()
	for {
		err := consumer.Pull(ctx, func(ctx context.Context, msg *messaging.Message) error {
			evt, err := statusmessaging.UnmarshalStatusEvent(msg.Data)
			if err != nil {
				log.Logger(ctx).Warn("invalid payload", zap.String("msgID", msg.ID), zap.Error(err))
				return nil
			}
			log.Logger(ctx).Sugar().Infof("order %s (%s): %s -> %s", evt.OrderID, evt.DisplayName, evt.Previous, evt.Status)
			return nil
		})
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			log.Logger(ctx).Warn("watch", zap.Error(err))
		}
	}
}

func decisions(config *config) ([]common.Decision, error) {
	if config.Decision == "" {
		return nil, nil
	}
	var ds []common.Decision
	for _, d := range strings.Split(config.Decision, ",") {
		decision, err := common.DecisionString(d)
		if err != nil {
			return nil, err
		}
		ds = append(ds, decision)
	}
	return ds, nil
}

func quotations(ctx context.Context, a app, config *config) error {
	ds, err := decisions(config)
	if err != nil {
		return err
	}
	qs, err := a.tasking.Quotations(ctx, tasking.QuotationFilter{OrderID: config.OrderID, Decisions: ds, Limit: config.Limit})
	if err != nil {
		return err
	}
	return printJSON(qs)
}

func decide(ctx context.Context, a app, config *config) error {
	decision, err := common.DecisionString(config.Decision)
	if err != nil {
		return fmt.Errorf("decision: %w", err)
	}
	q, err := a.tasking.DecideQuotation(ctx, config.QuotationID, decision)
	if err != nil {
		return err
	}
	return printJSON(q)
}

func feasibilities(ctx context.Context, a app, config *config) error {
	ds, err := decisions(config)
	if err != nil {
		return err
	}
	fs, err := a.tasking.Feasibilities(ctx, tasking.FeasibilityFilter{OrderID: config.OrderID, Decisions: ds, Limit: config.Limit})
	if err != nil {
		return err
	}
	return printJSON(fs)
}

func choose(ctx context.Context, a app, config *config) error {
	f, err := a.tasking.ChooseFeasibility(ctx, config.FeasibilityID, config.OptionID)
	if err != nil {
		return err
	}
	return printJSON(f)
}

func download(ctx context.Context, a app, config *config) error {
	if config.OrderID == "" {
		return fmt.Errorf("missing order-id config flag")
	}
	if config.WorkingDir == "" {
		return fmt.Errorf("missing workdir config flag")
	}
	var files []string
	var err error
	if config.StorageURI != "" {
		storage, e := service.NewStorageStrategy(ctx, config.StorageURI)
		if e != nil {
			return fmt.Errorf("storage %s: %w", config.StorageURI, e)
		}
		files, err = a.order.SaveAssets(ctx, config.OrderID, config.WorkingDir, storage)
	} else {
		files, err = a.order.DownloadAssets(ctx, config.OrderID, config.WorkingDir, config.Unpack)
	}
	for _, f := range files {
		pterm.Println(f)
	}
	if errors.Is(err, context.Canceled) {
		log.Logger(ctx).Warn("download interrupted")
	}
	return err
}
