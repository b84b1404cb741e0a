package catalog

var defaultProducts = []Product{
	{"Sony WH-1000XM5", "https://www.amazon.com/s?k=Sony+WH-1000XM5"},
	{"Bose QC Ultra", "https://www.amazon.com/s?k=Bose+QuietComfort+Ultra"},
	{"Sennheiser Momentum 4", "https://www.amazon.com/s?k=Sennheiser+Momentum+4+Wireless"},
	{"JBL Tune 770NC", "https://www.amazon.com/s?k=JBL+Tune+770NC"},
	{"Beyerdynamic DT 900 Pro X", "https://www.amazon.com/s?k=Beyerdynamic+DT+900+Pro+X"},
	{"Audio-Technica ATH-M50x", "https://www.amazon.com/s?k=Audio-Technica+ATH-M50x"},
	{"Sony MDR-7506", "https://www.amazon.com/s?k=Sony+MDR-7506"},
	{"HiFiMAN Sundara", "https://www.amazon.com/s?k=HiFiMAN+Sundara"},
	{"AirPods Pro 2", "https://www.amazon.com/s?k=AirPods+Pro+2"},
	{"Sony WF-1000XM5", "https://www.amazon.com/s?k=Sony+WF-1000XM5"},
	{"Samsung Galaxy Buds3 Pro", "https://www.amazon.com/s?k=Samsung+Galaxy+Buds3+Pro"},
	{"Nothing Ear 2", "https://www.amazon.com/s?k=Nothing+Ear+2"},
	{"Jabra Elite 85t", "https://www.amazon.com/s?k=Jabra+Elite+85t"},
	{"JBL Tour Pro 2", "https://www.amazon.com/s?k=JBL+Tour+Pro+2"},
	{"Google Pixel Buds Pro 2", "https://www.amazon.com/s?k=Google+Pixel+Buds+Pro+2"},
	{"Beats Fit Pro", "https://www.amazon.com/s?k=Beats+Fit+Pro"},
	{"Sony WI-1000XM2", "https://www.amazon.com/s?k=Sony+WI-1000XM2"},
	{"JBL Tune Beam", "https://www.amazon.com/s?k=JBL+Tune+Beam"},
	{"OnePlus Bullets Z2", "https://www.amazon.com/s?k=OnePlus+Bullets+Z2"},
	{"Moondrop Aria", "https://www.amazon.com/s?k=Moondrop+Aria"},
	{"Shure SE846", "https://www.amazon.com/s?k=Shure+SE846"},
	{"Truthear HEXA", "https://www.amazon.com/s?k=Truthear+HEXA"},
	{"KZ ZS10 Pro", "https://www.amazon.com/s?k=KZ+ZS10+Pro"},
	{"SteelSeries Arctis Nova Pro", "https://www.amazon.com/s?k=SteelSeries+Arctis+Nova+Pro"},
	{"HyperX Cloud III", "https://www.amazon.com/s?k=HyperX+Cloud+III"},
}

// Order matters: the first key found in the input wins.
var defaultTopics = []Topic{
	{"bass", "For bass lovers, I'd recommend the **Sony WH-1000XM5** (over-ear, $298) or **JBL Tune 770NC** (budget $79). Both deliver deep, punchy bass. Click any product to browse it."},
	{"noise", "Top ANC picks: **Bose QC Ultra** (best silence, $349), **Sony WH-1000XM5** (best all-rounder, $298), and **AirPods Pro 2** (compact ANC, $199). Click to view details."},
	{"gaming", "For gaming: **SteelSeries Arctis Nova Pro** (best spatial audio, $349) or **HyperX Cloud III** (budget-friendly, $99). Both offer low latency and clear mics. Click to browse."},
	{"wireless", "Best wireless: **Sony WH-1000XM5** ($298, 30h), **Sennheiser Momentum 4** ($279, 60h!), or **JBL Tune 770NC** ($79, 44h). Click a product to see it."},
	{"budget", "Great budget picks: **JBL Tune 770NC** ($79 headphone), **Nothing Ear 2** ($99 TWS), **OnePlus Bullets Z2** ($29 neckband), or **Moondrop Aria** ($79 IEM). Click to browse."},
	{"workout", "For workouts: **Beats Fit Pro** (secure wingtips, $159), **Samsung Galaxy Buds3 Pro** (IPX7, $179). Both are sweat and splash proof! Click to view."},
	{"studio", "Studio picks: **Beyerdynamic DT 900 Pro X** (open-back mixing, $249), **Audio-Technica ATH-M50x** (closed monitoring, $149), **Sony MDR-7506** (studio legend, $89). Click any."},
	{"tws", "Top TWS: **AirPods Pro 2** (best for iPhone, $199), **Sony WF-1000XM5** (best ANC, $228), **Samsung Galaxy Buds3 Pro** (Android, $179). Click to view."},
	{"neckband", "Best neckbands: **Sony WI-1000XM2** ($248, ANC), **JBL Tune Beam** ($49, 32h battery), **OnePlus Bullets Z2** ($29, fast charge). Click to browse."},
	{"earphone", "Wired IEM picks: **Moondrop Aria** ($79, Harman-tuned), **Truthear HEXA** ($79, hybrid), **Shure SE846** ($699, audiophile). Click a link to view."},
	{"headphone", "Best headphones: **Sony WH-1000XM5** (overall, $298), **Bose QC Ultra** (ANC, $349), **Sennheiser Momentum 4** (60h, $279), **HiFiMAN Sundara** (planar, $299). Click to browse."},
	{"travel", "For travel: **Bose QC Ultra** (best ANC, $349), **Sony WH-1000XM5** (30h + multipoint, $298), or **AirPods Pro 2** (compact, $199). Click any product."},
}

const defaultResponse = "I'd love to help! Ask about headphones, TWS, neckbands, or earphones. " +
	"I'll recommend products with clickable links - click any to view in the browser panel on the right! " +
	"What matters most: sound, comfort, ANC, or price?"

// Defaults returns the built-in headphone catalog and response table.
func Defaults() (*Catalog, *Responses) {
	c, err := NewCatalog(defaultProducts)
	if err != nil {
		panic("catalog: invalid built-in products: " + err.Error())
	}
	r, err := NewResponses(defaultTopics, defaultResponse)
	if err != nil {
		panic("catalog: invalid built-in responses: " + err.Error())
	}
	return c, r
}
