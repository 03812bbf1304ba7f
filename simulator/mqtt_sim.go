package main

import (
	"encoding/json"
	"log"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/steelworks-io/uplift/core/model"
)

func newMQTTClient(broker, clientID string) (paho.Client, error) {
	opts := paho.NewClientOptions().AddBroker(broker).SetClientID(clientID)
	opts.AutoReconnect = true
	cli := paho.NewClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return cli, nil
}

type envelope struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// answerProbes subscribes to the probe topic and publishes the full site
// snapshot on the response topic whenever a discovery probe arrives.
func answerProbes(cli paho.Client, probeTopic, responseTopic string, snap model.SiteSnapshot) error {
	token := cli.Subscribe(probeTopic, 0, func(_ paho.Client, _ paho.Message) {
		publishAll(cli, responseTopic, snap)
	})
	if token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

func publishAll(cli paho.Client, topic string, snap model.SiteSnapshot) {
	for _, p := range snap.Plants {
		publishRecord(cli, topic, "plant", p)
	}
	for _, u := range snap.PortUnits {
		publishRecord(cli, topic, "port", u)
	}
	for _, u := range snap.EnergyUnits {
		publishRecord(cli, topic, "energy", u)
	}
}

func publishRecord(cli paho.Client, topic, kind string, rec any) {
	payload, err := json.Marshal(rec)
	if err != nil {
		log.Printf("marshal %s record: %v", kind, err)
		return
	}
	body, err := json.Marshal(envelope{Kind: kind, Payload: payload})
	if err != nil {
		log.Printf("marshal envelope: %v", err)
		return
	}
	if token := cli.Publish(topic, 0, false, body); token.Wait() && token.Error() != nil {
		log.Printf("publish %s record: %v", kind, token.Error())
	}
}
