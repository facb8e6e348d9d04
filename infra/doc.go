// Package infra contains technical adapters that ship creation events
// elsewhere: the MQTT publisher, the Prometheus and InfluxDB observers and
// the zerolog logger. These packages should depend only on the interfaces
// defined in the core packages.
package infra
