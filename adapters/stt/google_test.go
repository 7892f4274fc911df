package stt

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/speech/apiv1/speechpb"
	"go.uber.org/zap/zaptest"

	"github.com/farolia/farol/domain/repositories"
)

var _ repositories.SpeechToText = &MockSpeechToText{}

func TestGetAudioEncoding(t *testing.T) {
	cases := map[string]speechpb.RecognitionConfig_AudioEncoding{
		"WAV":      speechpb.RecognitionConfig_LINEAR16,
		"linear16": speechpb.RecognitionConfig_LINEAR16,
		"webm":     speechpb.RecognitionConfig_WEBM_OPUS,
		"OGG_OPUS": speechpb.RecognitionConfig_OGG_OPUS,
		"FLAC":     speechpb.RecognitionConfig_FLAC,
		"MP3":      speechpb.RecognitionConfig_MP3,
	}
	for in, want := range cases {
		got, err := getAudioEncoding(in)
		if err != nil {
			t.Errorf("getAudioEncoding(%q) error = %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("getAudioEncoding(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := getAudioEncoding("AAC"); !errors.Is(err, repositories.ErrUnsupportedEncoding) {
		t.Errorf("Expected ErrUnsupportedEncoding, got %v", err)
	}
}

func TestBuildRecognizeRequest(t *testing.T) {
	audio := []byte{1, 2, 3}

	req, err := buildRecognizeRequest(audio, repositories.AudioConfig{Encoding: "WEBM_OPUS", Language: "pt-BR"})
	if err != nil {
		t.Fatalf("buildRecognizeRequest() error = %v", err)
	}
	if req.GetConfig().GetLanguageCode() != "pt-BR" {
		t.Errorf("unexpected language %q", req.GetConfig().GetLanguageCode())
	}
	if req.GetConfig().GetSampleRateHertz() != 0 {
		t.Errorf("Expected sample rate to be left unset, got %d", req.GetConfig().GetSampleRateHertz())
	}
	if string(req.GetAudio().GetContent()) != string(audio) {
		t.Errorf("audio content not carried over")
	}

	req, err = buildRecognizeRequest(audio, repositories.AudioConfig{Encoding: "LINEAR16", SampleRate: 16000, Language: "pt-BR"})
	if err != nil {
		t.Fatalf("buildRecognizeRequest() error = %v", err)
	}
	if req.GetConfig().GetSampleRateHertz() != 16000 {
		t.Errorf("Expected 16000 Hz, got %d", req.GetConfig().GetSampleRateHertz())
	}

	if _, err := buildRecognizeRequest(audio, repositories.AudioConfig{Encoding: "AAC"}); err == nil {
		t.Error("Expected error for unsupported encoding")
	}
}

func TestJoinTranscripts(t *testing.T) {
	results := []*speechpb.SpeechRecognitionResult{
		{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "Olá, "}, {Transcript: "Ola"}}},
		{},
		{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "tudo bem?"}}},
	}
	if got := joinTranscripts(results); got != "Olá, tudo bem?" {
		t.Errorf("joinTranscripts() = %q", got)
	}
	if got := joinTranscripts(nil); got != "" {
		t.Errorf("Expected empty transcript, got %q", got)
	}
}

func TestMockSpeechToText(t *testing.T) {
	m := NewMockSpeechToText(zaptest.NewLogger(t))

	if _, err := m.TranscribeAudio(context.Background(), nil, repositories.AudioConfig{}); err == nil {
		t.Error("Expected error for empty audio")
	}

	text, err := m.TranscribeAudio(context.Background(), make([]byte, 2000), repositories.AudioConfig{})
	if err != nil {
		t.Fatalf("TranscribeAudio() error = %v", err)
	}
	if text != "Olá, Farol!" {
		t.Errorf("unexpected transcription %q", text)
	}
}
