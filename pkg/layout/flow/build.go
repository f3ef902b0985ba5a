package flow

import (
	"cmp"
	"slices"

	"github.com/matzehuels/refugeeflow/pkg/dataset"
)

type entry struct {
	country string
	value   float64
	order   int
}

type column struct {
	year    int
	total   float64
	scale   float64
	ranked  []entry
	topSet  map[string]bool
	values  map[string]float64
	indexOf map[Category]int
}

// Build lays out the flow diagram for years over the records of regions.
// Fewer than two distinct years, no regions, or a column without a positive
// value yield the empty diagram.
func Build(ds *dataset.Dataset, regions []string, years []int, opts Options) Diagram {
	opts = opts.withDefaults()
	d := Diagram{Options: opts}

	years = distinct(years)
	if len(years) < 2 || len(regions) == 0 {
		return d
	}
	records := firstPerCountry(ds.Filter(regions))

	cols := make([]*column, len(years))
	for i, y := range years {
		c := rankColumn(records, y, opts.TopN)
		if c.total <= 0 {
			return d
		}
		c.scale = opts.ColumnHeight / c.total
		cols[i] = c
	}

	d.Years = years
	d.Regions = slices.Clone(regions)
	spacing := opts.ColumnSpacing / float64(len(years)-1)
	for i, c := range cols {
		d.placeColumn(c, float64(i)*spacing, opts)
		d.Totals = append(d.Totals, c.total)
	}
	for i := 0; i+1 < len(cols); i++ {
		d.Links = append(d.Links, linkColumns(records, cols[i], cols[i+1])...)
	}
	d.stackBands(cols)

	d.Width = opts.ColumnSpacing + opts.NodeWidth
	for _, n := range d.Nodes {
		d.Height = max(d.Height, n.Y1)
	}
	return d
}

func distinct(years []int) []int {
	out := make([]int, 0, len(years))
	for _, y := range years {
		if !slices.Contains(out, y) {
			out = append(out, y)
		}
	}
	return out
}

func firstPerCountry(records []dataset.Record) []dataset.Record {
	seen := make(map[string]bool, len(records))
	out := records[:0:0]
	for _, r := range records {
		if seen[r.Country] {
			continue
		}
		seen[r.Country] = true
		out = append(out, r)
	}
	return out
}

// rankColumn sorts a year's positive values and marks the top n.
func rankColumn(records []dataset.Record, year, n int) *column {
	c := &column{
		year:    year,
		topSet:  make(map[string]bool),
		values:  make(map[string]float64),
		indexOf: make(map[Category]int),
	}
	for i, r := range records {
		v := r.Value(year).Magnitude
		if v <= 0 {
			continue
		}
		c.ranked = append(c.ranked, entry{country: r.Country, value: v, order: i})
		c.values[r.Country] = v
		c.total += v
	}
	slices.SortFunc(c.ranked, func(a, b entry) int {
		return cmp.Or(
			cmp.Compare(b.value, a.value),
			cmp.Compare(a.country, b.country),
			cmp.Compare(a.order, b.order),
		)
	})
	for i := range min(n, len(c.ranked)) {
		c.topSet[c.ranked[i].country] = true
	}
	return c
}

// category resolves a country to its node in this column.
func (c *column) category(country string) Category {
	if c.topSet[country] {
		return Category{Label: country}
	}
	return Category{Label: OtherLabel, IsOther: true}
}

func (d *Diagram) placeColumn(c *column, x float64, opts Options) {
	y := 0.0
	add := func(cat Category, value float64, countries []string) {
		h := value * c.scale
		c.indexOf[cat] = len(d.Nodes)
		d.Nodes = append(d.Nodes, Node{
			Category:  cat,
			Year:      c.year,
			Value:     value,
			X0:        x,
			X1:        x + opts.NodeWidth,
			Y0:        y,
			Y1:        y + h,
			Countries: countries,
		})
		y += h + opts.NodeGap
	}

	var other float64
	var otherCountries []string
	for _, e := range c.ranked {
		if c.topSet[e.country] {
			add(Category{Label: e.country}, e.value, []string{e.country})
			continue
		}
		other += e.value
		otherCountries = append(otherCountries, e.country)
	}
	if other > 0 {
		add(Category{Label: OtherLabel, IsOther: true}, other, otherCountries)
	}
}

type pairKey struct{ source, target Category }

// linkColumns merges per-country contributions by category pair. Links are
// ordered by source node, then target node.
func linkColumns(records []dataset.Record, a, b *column) []Link {
	acc := make(map[pairKey]*Link)
	for _, r := range records {
		va, vb := a.values[r.Country], b.values[r.Country]
		if va <= 0 || vb <= 0 {
			continue
		}
		k := pairKey{a.category(r.Country), b.category(r.Country)}
		l, ok := acc[k]
		if !ok {
			l = &Link{
				Source:      NodeKey{Category: k.source, Year: a.year},
				Target:      NodeKey{Category: k.target, Year: b.year},
				SourceIndex: a.indexOf[k.source],
				TargetIndex: b.indexOf[k.target],
			}
			acc[k] = l
		}
		l.Value += min(va, vb)
		l.Countries = append(l.Countries, r.Country)
	}

	links := make([]Link, 0, len(acc))
	for _, l := range acc {
		links = append(links, *l)
	}
	slices.SortFunc(links, func(x, y Link) int {
		return cmp.Or(
			cmp.Compare(x.SourceIndex, y.SourceIndex),
			cmp.Compare(x.TargetIndex, y.TargetIndex),
		)
	})
	return links
}

// stackBands assigns each link a band inside both of its nodes. Outgoing
// bands follow target order, incoming bands follow source order.
func (d *Diagram) stackBands(cols []*column) {
	scaleOf := make(map[int]float64, len(cols))
	for _, c := range cols {
		scaleOf[c.year] = c.scale
	}

	out := make(map[int]float64, len(d.Nodes))
	for i := range d.Links {
		l := &d.Links[i]
		w := l.Value * scaleOf[l.Source.Year]
		l.SY0 = d.Nodes[l.SourceIndex].Y0 + out[l.SourceIndex]
		l.SY1 = l.SY0 + w
		out[l.SourceIndex] += w
	}

	order := make([]int, len(d.Links))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(x, y int) int {
		lx, ly := d.Links[x], d.Links[y]
		return cmp.Or(
			cmp.Compare(lx.TargetIndex, ly.TargetIndex),
			cmp.Compare(lx.SourceIndex, ly.SourceIndex),
		)
	})
	in := make(map[int]float64, len(d.Nodes))
	for _, i := range order {
		l := &d.Links[i]
		w := l.Value * scaleOf[l.Target.Year]
		l.TY0 = d.Nodes[l.TargetIndex].Y0 + in[l.TargetIndex]
		l.TY1 = l.TY0 + w
		in[l.TargetIndex] += w
	}
}
