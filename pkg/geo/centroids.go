package geo

import "maps"

// LonLat is a geographic coordinate in degrees.
type LonLat struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// builtinCentroids holds approximate centroids keyed by geometry-source
// (Natural Earth 1:110m) country names.
var builtinCentroids = map[string]LonLat{
	"Afghanistan":               {Lon: 66.0, Lat: 33.8},
	"Albania":                   {Lon: 20.0, Lat: 41.1},
	"Algeria":                   {Lon: 2.6, Lat: 28.2},
	"Angola":                    {Lon: 17.5, Lat: -12.3},
	"Argentina":                 {Lon: -65.2, Lat: -35.4},
	"Armenia":                   {Lon: 44.9, Lat: 40.3},
	"Australia":                 {Lon: 134.5, Lat: -25.7},
	"Austria":                   {Lon: 14.1, Lat: 47.6},
	"Azerbaijan":                {Lon: 47.7, Lat: 40.3},
	"Bahamas":                   {Lon: -77.9, Lat: 24.5},
	"Bangladesh":                {Lon: 90.2, Lat: 23.8},
	"Belarus":                   {Lon: 28.0, Lat: 53.5},
	"Belgium":                   {Lon: 4.6, Lat: 50.6},
	"Belize":                    {Lon: -88.7, Lat: 17.2},
	"Benin":                     {Lon: 2.3, Lat: 9.6},
	"Bhutan":                    {Lon: 90.4, Lat: 27.4},
	"Bolivia":                   {Lon: -64.6, Lat: -16.7},
	"Bosnia and Herz.":          {Lon: 17.8, Lat: 44.2},
	"Botswana":                  {Lon: 23.8, Lat: -22.2},
	"Brazil":                    {Lon: -53.1, Lat: -10.8},
	"Brunei":                    {Lon: 114.7, Lat: 4.5},
	"Bulgaria":                  {Lon: 25.2, Lat: 42.8},
	"Burkina Faso":              {Lon: -1.8, Lat: 12.3},
	"Burundi":                   {Lon: 29.9, Lat: -3.4},
	"Cambodia":                  {Lon: 104.9, Lat: 12.7},
	"Cameroon":                  {Lon: 12.7, Lat: 5.7},
	"Canada":                    {Lon: -98.3, Lat: 61.4},
	"Central African Rep.":      {Lon: 20.5, Lat: 6.6},
	"Chad":                      {Lon: 18.6, Lat: 15.3},
	"Chile":                     {Lon: -71.4, Lat: -37.7},
	"China":                     {Lon: 103.8, Lat: 36.6},
	"Colombia":                  {Lon: -73.1, Lat: 3.9},
	"Congo":                     {Lon: 15.2, Lat: -0.8},
	"Costa Rica":                {Lon: -84.2, Lat: 10.0},
	"Côte d'Ivoire":             {Lon: -5.6, Lat: 7.6},
	"Croatia":                   {Lon: 16.4, Lat: 45.0},
	"Cuba":                      {Lon: -79.0, Lat: 21.6},
	"Cyprus":                    {Lon: 33.2, Lat: 35.0},
	"Czechia":                   {Lon: 15.3, Lat: 49.7},
	"Dem. Rep. Congo":           {Lon: 23.6, Lat: -2.9},
	"Denmark":                   {Lon: 10.0, Lat: 56.0},
	"Djibouti":                  {Lon: 42.6, Lat: 11.7},
	"Dominican Rep.":            {Lon: -70.5, Lat: 18.9},
	"Ecuador":                   {Lon: -78.4, Lat: -1.4},
	"Egypt":                     {Lon: 29.9, Lat: 26.5},
	"El Salvador":               {Lon: -88.9, Lat: 13.7},
	"Eq. Guinea":                {Lon: 10.3, Lat: 1.6},
	"Eritrea":                   {Lon: 38.7, Lat: 15.4},
	"Estonia":                   {Lon: 25.5, Lat: 58.7},
	"eSwatini":                  {Lon: 31.5, Lat: -26.6},
	"Ethiopia":                  {Lon: 39.6, Lat: 8.6},
	"Fiji":                      {Lon: 178.0, Lat: -17.8},
	"Finland":                   {Lon: 26.2, Lat: 64.5},
	"France":                    {Lon: 2.5, Lat: 46.6},
	"Gabon":                     {Lon: 11.8, Lat: -0.6},
	"Gambia":                    {Lon: -15.4, Lat: 13.4},
	"Georgia":                   {Lon: 43.5, Lat: 42.2},
	"Germany":                   {Lon: 10.4, Lat: 51.1},
	"Ghana":                     {Lon: -1.2, Lat: 7.9},
	"Greece":                    {Lon: 22.6, Lat: 39.3},
	"Greenland":                 {Lon: -41.0, Lat: 74.7},
	"Guatemala":                 {Lon: -90.4, Lat: 15.7},
	"Guinea":                    {Lon: -11.0, Lat: 10.4},
	"Guinea-Bissau":             {Lon: -15.0, Lat: 12.0},
	"Guyana":                    {Lon: -58.9, Lat: 4.8},
	"Haiti":                     {Lon: -72.7, Lat: 19.0},
	"Honduras":                  {Lon: -86.6, Lat: 14.8},
	"Hungary":                   {Lon: 19.4, Lat: 47.2},
	"Iceland":                   {Lon: -18.6, Lat: 65.0},
	"India":                     {Lon: 79.6, Lat: 22.9},
	"Indonesia":                 {Lon: 117.3, Lat: -2.2},
	"Iran":                      {Lon: 54.3, Lat: 32.6},
	"Iraq":                      {Lon: 43.8, Lat: 33.0},
	"Ireland":                   {Lon: -8.1, Lat: 53.2},
	"Israel":                    {Lon: 35.0, Lat: 31.5},
	"Italy":                     {Lon: 12.1, Lat: 42.8},
	"Jamaica":                   {Lon: -77.3, Lat: 18.1},
	"Japan":                     {Lon: 138.0, Lat: 37.5},
	"Jordan":                    {Lon: 36.8, Lat: 31.2},
	"Kazakhstan":                {Lon: 67.3, Lat: 48.2},
	"Kenya":                     {Lon: 37.8, Lat: 0.6},
	"Kosovo":                    {Lon: 20.9, Lat: 42.6},
	"Kuwait":                    {Lon: 47.6, Lat: 29.3},
	"Kyrgyzstan":                {Lon: 74.6, Lat: 41.5},
	"Laos":                      {Lon: 103.8, Lat: 18.5},
	"Latvia":                    {Lon: 24.9, Lat: 56.9},
	"Lebanon":                   {Lon: 35.9, Lat: 33.9},
	"Lesotho":                   {Lon: 28.2, Lat: -29.6},
	"Liberia":                   {Lon: -9.3, Lat: 6.4},
	"Libya":                     {Lon: 18.0, Lat: 27.0},
	"Lithuania":                 {Lon: 23.9, Lat: 55.3},
	"Luxembourg":                {Lon: 6.1, Lat: 49.8},
	"Macedonia":                 {Lon: 21.7, Lat: 41.6},
	"Madagascar":                {Lon: 46.7, Lat: -19.4},
	"Malawi":                    {Lon: 34.2, Lat: -13.2},
	"Malaysia":                  {Lon: 109.7, Lat: 3.8},
	"Mali":                      {Lon: -3.5, Lat: 17.4},
	"Mauritania":                {Lon: -10.3, Lat: 20.2},
	"Mexico":                    {Lon: -102.5, Lat: 23.9},
	"Moldova":                   {Lon: 28.5, Lat: 47.2},
	"Mongolia":                  {Lon: 103.1, Lat: 46.8},
	"Montenegro":                {Lon: 19.3, Lat: 42.8},
	"Morocco":                   {Lon: -6.3, Lat: 31.9},
	"Mozambique":                {Lon: 35.5, Lat: -17.3},
	"Myanmar":                   {Lon: 96.5, Lat: 21.0},
	"Namibia":                   {Lon: 17.2, Lat: -22.1},
	"Nepal":                     {Lon: 83.9, Lat: 28.3},
	"Netherlands":               {Lon: 5.3, Lat: 52.2},
	"New Zealand":               {Lon: 172.0, Lat: -41.8},
	"Nicaragua":                 {Lon: -85.0, Lat: 12.9},
	"Niger":                     {Lon: 9.4, Lat: 17.4},
	"Nigeria":                   {Lon: 8.1, Lat: 9.6},
	"North Korea":               {Lon: 127.2, Lat: 40.1},
	"Norway":                    {Lon: 15.3, Lat: 68.8},
	"Oman":                      {Lon: 56.1, Lat: 20.6},
	"Pakistan":                  {Lon: 69.4, Lat: 29.9},
	"Palestine":                 {Lon: 35.2, Lat: 31.9},
	"Panama":                    {Lon: -80.1, Lat: 8.5},
	"Papua New Guinea":          {Lon: 145.2, Lat: -6.5},
	"Paraguay":                  {Lon: -58.4, Lat: -23.2},
	"Peru":                      {Lon: -74.4, Lat: -9.2},
	"Philippines":               {Lon: 122.9, Lat: 11.8},
	"Poland":                    {Lon: 19.4, Lat: 52.1},
	"Portugal":                  {Lon: -8.1, Lat: 39.6},
	"Puerto Rico":               {Lon: -66.5, Lat: 18.2},
	"Qatar":                     {Lon: 51.2, Lat: 25.3},
	"Romania":                   {Lon: 25.0, Lat: 45.9},
	"Russia":                    {Lon: 96.7, Lat: 61.9},
	"Rwanda":                    {Lon: 29.9, Lat: -2.0},
	"S. Sudan":                  {Lon: 30.2, Lat: 7.3},
	"Saudi Arabia":              {Lon: 44.5, Lat: 24.1},
	"Senegal":                   {Lon: -14.5, Lat: 14.4},
	"Serbia":                    {Lon: 20.8, Lat: 44.2},
	"Sierra Leone":              {Lon: -11.8, Lat: 8.5},
	"Slovakia":                  {Lon: 19.5, Lat: 48.7},
	"Slovenia":                  {Lon: 14.9, Lat: 46.1},
	"Solomon Is.":               {Lon: 159.6, Lat: -8.9},
	"Somalia":                   {Lon: 45.7, Lat: 4.8},
	"South Africa":              {Lon: 25.1, Lat: -29.0},
	"South Korea":               {Lon: 127.8, Lat: 36.4},
	"Spain":                     {Lon: -3.6, Lat: 40.2},
	"Sri Lanka":                 {Lon: 80.7, Lat: 7.7},
	"Sudan":                     {Lon: 29.9, Lat: 15.9},
	"Suriname":                  {Lon: -55.9, Lat: 4.1},
	"Sweden":                    {Lon: 16.7, Lat: 62.8},
	"Switzerland":               {Lon: 8.2, Lat: 46.8},
	"Syria":                     {Lon: 38.5, Lat: 35.0},
	"Taiwan":                    {Lon: 121.0, Lat: 23.7},
	"Tajikistan":                {Lon: 71.0, Lat: 38.5},
	"Tanzania":                  {Lon: 34.8, Lat: -6.3},
	"Thailand":                  {Lon: 101.0, Lat: 15.1},
	"Timor-Leste":               {Lon: 125.9, Lat: -8.8},
	"Togo":                      {Lon: 0.96, Lat: 8.5},
	"Trinidad and Tobago":       {Lon: -61.3, Lat: 10.4},
	"Tunisia":                   {Lon: 9.6, Lat: 34.1},
	"Turkey":                    {Lon: 35.2, Lat: 39.1},
	"Turkmenistan":              {Lon: 59.2, Lat: 39.1},
	"Uganda":                    {Lon: 32.4, Lat: 1.3},
	"Ukraine":                   {Lon: 31.4, Lat: 49.0},
	"United Arab Emirates":      {Lon: 54.2, Lat: 23.9},
	"United Kingdom":            {Lon: -2.9, Lat: 54.1},
	"United States of America":  {Lon: -99.1, Lat: 39.5},
	"Uruguay":                   {Lon: -56.0, Lat: -32.8},
	"Uzbekistan":                {Lon: 63.2, Lat: 41.8},
	"Vanuatu":                   {Lon: 166.9, Lat: -15.4},
	"Venezuela":                 {Lon: -66.2, Lat: 7.1},
	"Vietnam":                   {Lon: 106.3, Lat: 16.6},
	"W. Sahara":                 {Lon: -12.2, Lat: 24.2},
	"Yemen":                     {Lon: 47.6, Lat: 15.9},
	"Zambia":                    {Lon: 27.8, Lat: -13.5},
	"Zimbabwe":                  {Lon: 29.9, Lat: -19.0},
}

// BuiltinCentroids returns a copy of the built-in centroid table.
func BuiltinCentroids() map[string]LonLat {
	return maps.Clone(builtinCentroids)
}
