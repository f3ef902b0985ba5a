package geo

// Background holds the base-map primitives in frame coordinates. It does
// not depend on the selection and is drawn under every frame.
type Background struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	// Sphere is the closed outline of the projected globe.
	Sphere [][2]float64 `json:"sphere"`
	// Graticule holds 10 degree meridians and parallels as open polylines.
	Graticule [][][2]float64 `json:"graticule"`
	// Land holds every country ring when boundary geometry is loaded.
	Land [][][2]float64 `json:"land,omitempty"`
	// Observer holds the observer country's rings, drawn as an outline.
	Observer [][][2]float64 `json:"observer,omitempty"`
}

const (
	graticuleStep  = 10.0
	graticuleMinor = 80.0
	sampleStep     = 2.5
)

// Background projects the sphere, graticule and (when loaded) land
// outlines. The observer outline is looked up through the alias table.
func (a *Adapter) Background(observer string) Background {
	bg := Background{Width: a.width, Height: a.height}
	bg.Sphere = a.sphereOutline()
	bg.Graticule = a.graticule()
	for _, name := range sortedKeys(a.outlines) {
		bg.Land = append(bg.Land, a.projectRings(a.outlines[name])...)
	}
	if rings, ok := a.outlines[a.GeoName(observer)]; ok {
		bg.Observer = a.projectRings(rings)
	}
	return bg
}

func (a *Adapter) sphereOutline() [][2]float64 {
	var out [][2]float64
	for lat := -90.0; lat <= 90; lat += sampleStep {
		out = append(out, a.project(-180, lat))
	}
	for lat := 90.0; lat >= -90; lat -= sampleStep {
		out = append(out, a.project(180, lat))
	}
	return out
}

func (a *Adapter) graticule() [][][2]float64 {
	var lines [][][2]float64
	for lon := -180.0; lon <= 180; lon += graticuleStep {
		extent := graticuleMinor
		if int(lon)%90 == 0 {
			extent = 90
		}
		var line [][2]float64
		for lat := -extent; lat <= extent; lat += sampleStep {
			line = append(line, a.project(lon, lat))
		}
		lines = append(lines, line)
	}
	for lat := -graticuleMinor; lat <= graticuleMinor; lat += graticuleStep {
		var line [][2]float64
		for lon := -180.0; lon <= 180; lon += sampleStep {
			line = append(line, a.project(lon, lat))
		}
		lines = append(lines, line)
	}
	return lines
}

func (a *Adapter) projectRings(rings [][][]float64) [][][2]float64 {
	out := make([][][2]float64, 0, len(rings))
	for _, ring := range rings {
		pts := make([][2]float64, 0, len(ring))
		for _, c := range ring {
			if len(c) < 2 {
				continue
			}
			pts = append(pts, a.project(c[0], c[1]))
		}
		if len(pts) > 1 {
			out = append(out, pts)
		}
	}
	return out
}

func (a *Adapter) project(lon, lat float64) [2]float64 {
	x, y := a.proj.Project(lon, lat)
	return [2]float64{x, y}
}
