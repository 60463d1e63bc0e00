package publishers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryEnabledFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.yaml")
	raw := `
publishers:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: http2
    type: http
    enabled: true
    http:
      url: https://example.com/2
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "http2" {
		t.Fatalf("expected only http2 enabled, got %#v", enabled)
	}
}

func TestLoadRegistryParsesQueueTypes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.yaml")
	raw := `
publishers:
  - id: queue
    type: sqs
    sqs:
      uri: https://sqs.ap-south-1.amazonaws.com/1234/articles
      region: ap-south-1
  - id: topic
    type: sns
    sns:
      topic_arn: arn:aws:sns:ap-south-1:1234:articles
      region: ap-south-1
  - id: gcp
    type: gcp_pubsub
    gcp:
      project_id: samvad-prod
      topic: articles
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.All()) != 3 {
		t.Fatalf("expected 3 publishers, got %d", len(reg.All()))
	}

	cfg, ok := reg.ByID("topic")
	if !ok || cfg.SNS == nil || cfg.SNS.TopicARN != "arn:aws:sns:ap-south-1:1234:articles" {
		t.Fatalf("sns config not loaded: %#v", cfg)
	}
}

func TestValidatePublisherConfigRejectsMissingHTTP(t *testing.T) {
	err := validatePublisherConfig(PublisherConfig{
		ID:   "h1",
		Type: TypeHTTP,
	})
	if err == nil {
		t.Fatalf("expected validation error for missing http block")
	}
}

func TestValidatePublisherConfigRejectsIncompleteGCP(t *testing.T) {
	err := validatePublisherConfig(PublisherConfig{
		ID:   "g1",
		Type: TypeGCPPubSub,
		GCP:  &GCPQueueConfig{ProjectID: "p"},
	})
	if err == nil {
		t.Fatalf("expected validation error for missing gcp topic")
	}
}
