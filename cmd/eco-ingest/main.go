package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecosense/eco-ingest/pkg/config"
	"github.com/ecosense/eco-ingest/pkg/gateways/broker/network"
	"github.com/ecosense/eco-ingest/pkg/gateways/ingest"
	"github.com/ecosense/eco-ingest/pkg/gateways/weather"
	"github.com/ecosense/eco-ingest/pkg/logging"
	"github.com/ecosense/eco-ingest/pkg/monitoring"
	"github.com/ecosense/eco-ingest/pkg/storage"
	"github.com/pkg/errors"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		logging.NewLogrus("info", os.Stdout).Get("Main").Fatalln(err)
	}

	logger := logging.NewLogrus(conf.LogLevel, os.Stdout)
	log := logger.Get("Main")
	if err := run(conf, logger); err != nil {
		log.Fatalln(err)
	}
	log.Println("backend stopped")
}

// run owns every resource with a shutdown step; returning instead of exiting
// lets the defers release them on failure paths too.
func run(conf *config.Config, logger *logging.Logrus) error {
	log := logger.Get("Main")
	log.Println("starting backend")

	metrics := monitoring.NewMetrics()
	go func() {
		if err := metrics.ListenAndServe(conf.Tuning.MetricsPort); err != nil {
			log.Errorln("metrics endpoint:", err)
		}
	}()

	repository, err := storage.NewPostgresReadingRepository(conf.DatabaseURL, logger.Get("Storage"))
	if err != nil {
		return err
	}
	defer repository.Close()

	weatherClient := weather.NewHTTPClient(
		conf.WeatherServiceURL,
		time.Duration(conf.Tuning.EnrichmentTimeoutSeconds)*time.Second,
	)

	connection := network.NewMqttConnection(network.ConnectionConfig{
		URL:      conf.BrokerURL,
		Username: conf.BrokerUsername,
		Password: conf.BrokerPassword,
	}, logger.Get("Broker"))
	mqtt := network.NewMQTTHandler(connection)
	if err := mqtt.Start(); err != nil {
		return errors.Wrap(err, "broker connection error")
	}
	defer mqtt.Stop()

	publisher := network.NewMsgPublisher(mqtt, conf.Tuning.Namespace)
	subscriber := network.NewMsgSubscriber(mqtt, conf.Tuning.Namespace)
	integration := ingest.NewIntegration(
		conf.Tuning,
		ingest.NewMemorySubscriptionStore(),
		publisher,
		subscriber,
		weatherClient,
		repository,
		metrics,
		logger.Get("Ingest"),
	)
	if err := integration.Start(); err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("closing broker connection")
	integration.Close()
	return nil
}
