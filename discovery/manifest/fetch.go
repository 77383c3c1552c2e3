package manifest

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter"

	"github.com/matsim-eth/python-matsim/errors"
)

// Resolve turns a manifest location into a local file path. Local paths
// and file:// URLs are returned as absolute paths; any other go-getter
// source (https, s3, git, ...) is downloaded into dir first. A non-nil
// client serves http and https downloads.
func Resolve(ctx context.Context, location, dir string, client *http.Client) (string, error) {
	if strings.HasPrefix(location, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "failed to get home directory")
		}
		location = filepath.Join(home, location[2:])
	}

	pwd, err := os.Getwd()
	if err != nil {
		pwd = "."
	}

	detected, err := getter.Detect(location, pwd, getter.Detectors)
	if err != nil {
		return "", errors.Wrapf(err, "invalid manifest location %s", location)
	}
	u, err := url.Parse(detected)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse manifest location %s", detected)
	}

	if u.Scheme == "" || u.Scheme == "file" {
		local := u.Path
		if u.Scheme == "" {
			local = location
		}
		abs, err := filepath.Abs(local)
		if err != nil {
			return "", errors.Wrap(err, "failed to make absolute path")
		}
		return abs, nil
	}

	return Fetch(ctx, detected, dir, client)
}

// Fetch downloads a single manifest file from src into dir, keeping the
// source's file name so the format can still be told from the extension.
func Fetch(ctx context.Context, src, dir string, httpClient *http.Client) (string, error) {
	name := "manifest.json"
	if u, err := url.Parse(src); err == nil {
		if base := path.Base(u.Path); base != "." && base != "/" && base != "" {
			name = base
		}
	}
	dst := filepath.Join(dir, name)

	pwd, err := os.Getwd()
	if err != nil {
		pwd = "."
	}
	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeFile,
	}
	if httpClient != nil {
		client.Getters = httpGetters(httpClient)
	}
	if err := client.Get(); err != nil {
		return "", errors.WithHint(
			errors.Wrapf(err, "fetch manifest %s", src),
			"check the URL and credentials, or download the manifest and pass a local path",
		)
	}
	return dst, nil
}

// httpGetters returns the default getter set with http and https served
// by c.
func httpGetters(c *http.Client) map[string]getter.Getter {
	getters := make(map[string]getter.Getter, len(getter.Getters))
	for scheme, g := range getter.Getters {
		getters[scheme] = g
	}
	hg := &getter.HttpGetter{Client: c, Netrc: true}
	getters["http"] = hg
	getters["https"] = hg
	return getters
}
