package config

import (
	"errors"
	"flag"
	"net"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"time"
)

type Config struct {
	Addr           string
	WebhookURL     string
	WebhookTimeout time.Duration
	FireAndForget  bool
	TokenSecret    string
	TokenTTL       time.Duration
	UsersFile      string
	DraftTTL       time.Duration
	Debug          bool
}

func ParseFlags() (Config, error) {
	return parseArgs(os.Args[1:])
}

func parseArgs(args []string) (cfg Config, err error) {
	flags := flag.NewFlagSet("focus-group-ai", flag.ContinueOnError)

	var host string
	flags.StringVar(&host, "host", "0.0.0.0", "listen host name (default 0.0.0.0)")
	var port uint
	flags.UintVar(&port, "port", 80, "listen port number (default 80)")
	flags.StringVar(&cfg.WebhookURL, "webhook-url", os.Getenv("WEBHOOK_URL"), "focus group processing webhook URL")
	var webhookTimeout uint
	flags.UintVar(&webhookTimeout, "webhook-timeout", 300, "webhook request timeout in seconds (default 300)")
	flags.BoolVar(&cfg.FireAndForget, "fire-and-forget", false, "do not await the webhook outcome, report success immediately")
	flags.StringVar(&cfg.TokenSecret, "token-secret", os.Getenv("TOKEN_SECRET"), "secret key for token encryption and decryption")
	var ttl uint
	flags.UintVar(&ttl, "token-ttl", 3600, "token TTL in seconds (default 3600)")
	flags.StringVar(&cfg.UsersFile, "users-file", "users.conf", "path to the username:bcrypt-hash credentials file")
	var draftTTL uint
	flags.UintVar(&draftTTL, "draft-ttl", 3600, "idle draft expiration in seconds (default 3600)")
	flags.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	if err = flags.Parse(args); err != nil {
		return
	}

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.WebhookTimeout = time.Duration(webhookTimeout) * time.Second
	cfg.TokenTTL = time.Duration(ttl) * time.Second
	cfg.DraftTTL = time.Duration(draftTTL) * time.Second

	if cfg.TokenSecret == "" {
		err = errors.New("missing parameter -token-secret")
		return
	}
	if cfg.WebhookURL == "" {
		err = errors.New("missing parameter -webhook-url")
		return
	}
	if _, err = url.ParseRequestURI(cfg.WebhookURL); err != nil {
		err = errors.New("invalid parameter -webhook-url: " + err.Error())
		return
	}
	// the draft sweeper ticks at half this interval
	if draftTTL == 0 {
		err = errors.New("invalid parameter -draft-ttl: must be positive")
		return
	}

	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
