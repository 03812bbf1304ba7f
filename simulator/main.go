// Command simulator emulates a set of site agents answering discovery
// probes, for exercising the planning service against a live broker.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	broker := flag.String("broker", "tcp://localhost:1883", "MQTT broker URL")
	probeTopic := flag.String("probe-topic", "uplift/sites/discovery", "discovery probe topic")
	responseTopic := flag.String("response-topic", "uplift/sites/response/sim", "discovery response topic")
	plants := flag.Int("plants", 4, "number of simulated plants")
	ports := flag.Int("ports", 2, "number of simulated port units")
	feeders := flag.Int("feeders", 2, "number of simulated energy feeders")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snap := GenerateSite(SiteConfig{Plants: *plants, PortUnits: *ports, EnergyUnits: *feeders})
	cli, err := newMQTTClient(*broker, "uplift-simulator")
	if err != nil {
		log.Fatalf("mqtt connect: %v", err)
	}
	defer cli.Disconnect(250)

	if err := answerProbes(cli, *probeTopic, *responseTopic, snap); err != nil {
		log.Fatalf("subscribe: %v", err)
	}
	log.Printf("simulating %d plants, %d port units, %d feeders", *plants, *ports, *feeders)
	<-ctx.Done()
}
