package plex

import (
	"encoding/xml"

	"github.com/MacsInSpace/plex-tui/internal/domain"
)

// mediaContainer is the envelope every Plex API response uses.
type mediaContainer struct {
	XMLName      xml.Name       `xml:"MediaContainer"`
	FriendlyName string         `xml:"friendlyName,attr"`
	Size         int            `xml:"size,attr"`
	Directories  []directory    `xml:"Directory"`
	Playlists    []playlistNode `xml:"Playlist"`
	Tracks       []trackNode    `xml:"Track"`
}

// directory is a library section or an artist/album entity.
type directory struct {
	Key   string `xml:"key,attr"`
	Type  string `xml:"type,attr"`
	Title string `xml:"title,attr"`
}

// playlistNode is a Playlist element. LeafCount stays a raw string so an
// absent attribute is distinguishable from a playlist with zero tracks.
type playlistNode struct {
	RatingKey string `xml:"ratingKey,attr"`
	Title     string `xml:"title,attr"`
	LeafCount string `xml:"leafCount,attr"`
}

// trackNode is a Track element with every attribute retained, so metadata
// reads can fall back to fields the schema does not model explicitly. Part
// keys are collected from the nested Media elements for stream resolution.
type trackNode struct {
	attrs    map[string]string
	partKeys []string
}

func (n *trackNode) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	n.attrs = make(map[string]string, len(start.Attr))
	for _, a := range start.Attr {
		n.attrs[a.Name.Local] = a.Value
	}

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "Part" {
				for _, a := range t.Attr {
					if a.Name.Local == "key" && a.Value != "" {
						n.partKeys = append(n.partKeys, a.Value)
					}
				}
			}
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

func (n *trackNode) attr(name string) string {
	return n.attrs[name]
}

// Lookup implements domain.Document over the element's raw attributes.
func (n *trackNode) Lookup(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

var _ domain.Document = (*trackNode)(nil)
