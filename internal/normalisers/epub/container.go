package epub

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/custodia-labs/encephalon/internal/core/domain"
)

const containerPath = "META-INF/container.xml"

type container struct {
	Rootfiles []struct {
		FullPath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

type packageDoc struct {
	Manifest []manifestItem `xml:"manifest>item"`
	Spine    []struct {
		IDRef string `xml:"idref,attr"`
	} `xml:"spine>itemref"`
}

type manifestItem struct {
	ID         string `xml:"id,attr"`
	Href       string `xml:"href,attr"`
	MediaType  string `xml:"media-type,attr"`
	Properties string `xml:"properties,attr"`
}

func (m manifestItem) isContent() bool {
	switch m.MediaType {
	case "application/xhtml+xml", "text/html":
	default:
		return false
	}
	for _, p := range strings.Fields(m.Properties) {
		if p == "nav" {
			return false
		}
	}
	return true
}

// contentDocuments returns the archive paths of the book's content
// documents: spine order first, then any remaining manifest documents.
func contentDocuments(zr *zip.Reader) ([]string, error) {
	var c container
	if err := decodeXML(zr, containerPath, &c); err != nil {
		return nil, err
	}
	if len(c.Rootfiles) == 0 || c.Rootfiles[0].FullPath == "" {
		return nil, fmt.Errorf("%s names no package document: %w", containerPath, domain.ErrConversion)
	}
	opfPath := c.Rootfiles[0].FullPath

	var pkg packageDoc
	if err := decodeXML(zr, opfPath, &pkg); err != nil {
		return nil, err
	}

	byID := make(map[string]manifestItem, len(pkg.Manifest))
	for _, item := range pkg.Manifest {
		byID[item.ID] = item
	}

	base := path.Dir(opfPath)
	seen := make(map[string]bool)
	var docs []string
	add := func(item manifestItem) {
		if !item.isContent() || seen[item.ID] {
			return
		}
		seen[item.ID] = true
		href := item.Href
		if unescaped, err := url.PathUnescape(href); err == nil {
			href = unescaped
		}
		docs = append(docs, path.Join(base, href))
	}

	for _, ref := range pkg.Spine {
		if item, ok := byID[ref.IDRef]; ok {
			add(item)
		}
	}
	for _, item := range pkg.Manifest {
		add(item)
	}
	return docs, nil
}

func decodeXML(zr *zip.Reader, name string, v any) error {
	rc, err := openEntry(zr, name)
	if err != nil {
		return err
	}
	defer rc.Close()

	if err := xml.NewDecoder(rc).Decode(v); err != nil {
		return fmt.Errorf("parse %s: %w: %w", name, domain.ErrConversion, err)
	}
	return nil
}

func openEntry(zr *zip.Reader, name string) (io.ReadCloser, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", name, domain.ErrConversion, err)
	}
	return f, nil
}
