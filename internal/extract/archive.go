package extract

import (
	"archive/zip"
	"encoding/xml"
	"regexp"
	"strings"
)

// archiveListing returns entry names from a ZIP-compatible archive.
func archiveListing(path string, limit int) (names []string, truncated, ok bool) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, false, false
	}
	defer r.Close()

	for _, file := range r.File {
		if len(names) >= limit {
			truncated = true
			break
		}
		names = append(names, file.Name)
	}
	return names, truncated, true
}

// BookMetadata holds fields read from an ebook's embedded metadata.
type BookMetadata struct {
	Title  string
	Author string
	Year   string
}

type epubContainer struct {
	Rootfiles []struct {
		FullPath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

type opfPackage struct {
	Metadata struct {
		Titles   []string `xml:"title"`
		Creators []string `xml:"creator"`
		Dates    []string `xml:"date"`
	} `xml:"metadata"`
}

var yearPattern = regexp.MustCompile(`\d{4}`)

// EPUBMetadata reads Dublin Core title, creator, and date from an
// EPUB's OPF package document. Titles shorter than three characters are
// treated as absent.
func EPUBMetadata(path string) (BookMetadata, bool) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return BookMetadata{}, false
	}
	defer r.Close()

	opfPath := findOPF(&r.Reader)
	if opfPath == "" {
		return BookMetadata{}, false
	}

	var pkg opfPackage
	if err := parseZipXML(&r.Reader, opfPath, &pkg); err != nil {
		return BookMetadata{}, false
	}

	meta := BookMetadata{}
	if len(pkg.Metadata.Titles) > 0 {
		meta.Title = strings.TrimSpace(pkg.Metadata.Titles[0])
	}
	if len(pkg.Metadata.Creators) > 0 {
		meta.Author = strings.TrimSpace(pkg.Metadata.Creators[0])
	}
	for _, date := range pkg.Metadata.Dates {
		if year := yearPattern.FindString(date); year != "" {
			meta.Year = year
			break
		}
	}
	if len(meta.Title) < 3 {
		return BookMetadata{}, false
	}
	return meta, true
}

// findOPF locates the package document, preferring the container
// manifest and falling back to the first .opf entry.
func findOPF(r *zip.Reader) string {
	var container epubContainer
	if err := parseZipXML(r, "META-INF/container.xml", &container); err == nil {
		for _, rootfile := range container.Rootfiles {
			if rootfile.FullPath != "" {
				return rootfile.FullPath
			}
		}
	}
	for _, file := range r.File {
		if strings.HasSuffix(strings.ToLower(file.Name), ".opf") {
			return file.Name
		}
	}
	return ""
}

func parseZipXML(r *zip.Reader, name string, v any) error {
	f, err := r.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return xml.NewDecoder(f).Decode(v)
}
