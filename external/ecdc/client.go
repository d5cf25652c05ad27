package ecdc

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/epimap/epimap-api/schema"
)

// Client downloads the published dataset into a local data directory and
// decodes it. Downloads are skipped when the file already exists, unless
// forced.
type Client struct {
	pageURL    string
	dataDir    string
	force      bool
	httpClient *http.Client
}

func NewClient(pageURL, dataDir string, force bool) *Client {
	if pageURL == "" {
		pageURL = DefaultPageURL
	}
	return &Client{
		pageURL: pageURL,
		dataDir: dataDir,
		force:   force,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

// Run resolves today's dataset link, downloads it if needed and decodes it
// into normalized observations plus the global date set.
func (c *Client) Run() ([]schema.Observation, []time.Time, error) {
	url, filename, err := c.ResolveDataURL()
	if nil != err {
		return nil, nil, err
	}

	target := filepath.Join(c.dataDir, filename)
	if err := c.DownloadIfNeeded(url, target); nil != err {
		return nil, nil, err
	}

	file, err := os.Open(target)
	if nil != err {
		return nil, nil, err
	}
	defer file.Close()

	return DecodeCSV(file)
}

// ResolveDataURL scrapes the publication page for the first link to a
// .csv or .xlsx file and returns the link plus its file name.
func (c *Client) ResolveDataURL() (string, string, error) {
	resp, err := c.httpClient.Get(c.pageURL)
	if nil != err {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("publication page returned %s", resp.Status)
	}

	tree, err := html.Parse(resp.Body)
	if nil != err {
		return "", "", err
	}

	link := findDataLink(tree)
	if link == "" {
		return "", "", fmt.Errorf("no .csv or .xlsx link found on %s", c.pageURL)
	}

	return link, path.Base(link), nil
}

func findDataLink(node *html.Node) string {
	if node.Type == html.ElementNode && node.Data == "a" {
		for _, attr := range node.Attr {
			if attr.Key != "href" {
				continue
			}
			href := strings.TrimSpace(attr.Val)
			if strings.HasSuffix(href, ".csv") || strings.HasSuffix(href, ".xlsx") {
				return href
			}
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if link := findDataLink(child); link != "" {
			return link
		}
	}
	return ""
}

// DownloadIfNeeded fetches the dataset to the target path. An existing file
// is reused unless the client was created with force set.
func (c *Client) DownloadIfNeeded(url, target string) error {
	if !c.force {
		if _, err := os.Stat(target); err == nil {
			log.WithFields(log.Fields{
				"prefix": logPrefix,
				"file":   target,
			}).Debug("dataset already downloaded")
			return nil
		}
	}

	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"url":    url,
	}).Info("downloading dataset")

	resp, err := c.httpClient.Get(url)
	if nil != err {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("dataset download returned %s", resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); nil != err {
		return err
	}

	tmp := target + ".part"
	file, err := os.Create(tmp)
	if nil != err {
		return err
	}

	written, err := io.Copy(file, resp.Body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if nil != err {
		os.Remove(tmp)
		return err
	}

	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"file":   target,
		"bytes":  written,
		"total":  resp.ContentLength,
	}).Info("dataset downloaded")

	return os.Rename(tmp, target)
}
