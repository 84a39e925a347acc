package config

import "job104-crawler/internal/scraper"

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/110.0.0.0 Safari/537.36"

// Default returns a configuration that needs no file on disk.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			SearchURL:   "https://www.104.com.tw/jobs/search/",
			LinkScheme:  "https:",
			AreaJoinSep: "%2C",
		},
		HTTP: HttpConfig{
			UserAgent:      defaultUserAgent,
			AcceptLanguage: "zh-TW,zh;q=0.9,en;q=0.8",
		},
		Locations: DefaultLocations(),
		Selectors: scraper.DefaultSelectors(),
		Output: OutputConfig{
			Dir:        "vacancies_excel",
			FileSuffix: "職缺資料",
		},
		Rod: RodConfig{
			PageTimeoutS: 60,
		},
		Storage: StorageConfig{
			CommandTimeoutMS: 5000,
		},
		Observability: ObservabilityConfig{
			LogPath:       "logs/job104.log",
			LogLevel:      "info",
			LogMaxSizeMB:  10,
			LogMaxBackups: 3,
			LogMaxAgeDays: 28,
		},
	}
}

// DefaultLocations is the site's fixed table of 20 regions, in the site's own order.
func DefaultLocations() []Location {
	return []Location{
		{Name: "台北市", Code: "6001001000"},
		{Name: "新北市", Code: "6001002000"},
		{Name: "宜蘭縣", Code: "6001003000"},
		{Name: "基隆市", Code: "6001004000"},
		{Name: "桃園市", Code: "6001005000"},
		{Name: "新竹縣市", Code: "6001006000"},
		{Name: "苗栗縣", Code: "6001007000"},
		{Name: "台中市", Code: "6001008000"},
		{Name: "彰化縣", Code: "6001010000"},
		{Name: "南投縣", Code: "6001011000"},
		{Name: "雲林縣", Code: "6001012000"},
		{Name: "嘉義縣市", Code: "6001013000"},
		{Name: "台南市", Code: "6001014000"},
		{Name: "高雄市", Code: "6001016000"},
		{Name: "屏東縣", Code: "6001018000"},
		{Name: "台東縣", Code: "6001019000"},
		{Name: "花蓮縣", Code: "6001020000"},
		{Name: "澎湖縣", Code: "6001021000"},
		{Name: "金門縣", Code: "6001022000"},
		{Name: "連江縣", Code: "6001023000"},
	}
}
