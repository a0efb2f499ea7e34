package service

import "github.com/GTDGit/store_api/internal/models"

type seedCategory struct {
	Name        string
	Slug        string
	Description string
}

type seedProduct struct {
	Name          string
	Slug          string
	Description   string
	Price         string
	CategorySlug  string
	ProductType   models.ProductType
	Brand         string
	Model         string
	StockQuantity int
	Specs         [][2]string
}

var seedCategories = []seedCategory{
	{"Процессоры", "processors", "Центральные процессоры для настольных компьютеров и серверов"},
	{"Видеокарты", "graphics-cards", "Графические карты для игр и профессиональной работы"},
	{"Материнские платы", "motherboards", "Основные платы для сборки компьютеров"},
	{"Оперативная память", "ram", "Модули оперативной памяти DDR4 и DDR5"},
	{"Накопители", "storage", "SSD и HDD накопители для хранения данных"},
	{"Блоки питания", "power-supplies", "Блоки питания для стабильной работы системы"},
	{"Корпуса", "cases", "Корпуса для системных блоков"},
	{"Охлаждение", "cooling", "Системы охлаждения для процессоров и видеокарт"},
	{"Компьютеры", "computers", "Готовые игровые и рабочие компьютеры"},
	{"Моноблоки", "all-in-one", "Компьютеры-моноблоки для дома и офиса"},
	{"Ноутбуки", "laptops", "Ноутбуки для работы, учебы и игр"},
}

var seedProducts = []seedProduct{
	{
		Name: "Intel Core i9-13900K", Slug: "intel-core-i9-13900k",
		Description: "Высокопроизводительный процессор Intel 13-го поколения с 24 ядрами",
		Price: "45000.00", CategorySlug: "processors", ProductType: models.ProductTypeComponent,
		Brand: "Intel", Model: "Core i9-13900K", StockQuantity: 15,
		Specs: [][2]string{
			{"Ядра", "24 (8P + 16E)"}, {"Потоки", "32"}, {"Базовая частота", "3.0 ГГц"},
			{"Максимальная частота", "5.8 ГГц"}, {"TDP", "125 Вт"}, {"Сокет", "LGA 1700"},
		},
	},
	{
		Name: "AMD Ryzen 9 7950X", Slug: "amd-ryzen-9-7950x",
		Description: "Флагманский процессор AMD с архитектурой Zen 4",
		Price: "42000.00", CategorySlug: "processors", ProductType: models.ProductTypeComponent,
		Brand: "AMD", Model: "Ryzen 9 7950X", StockQuantity: 12,
		Specs: [][2]string{
			{"Ядра", "16"}, {"Потоки", "32"}, {"Базовая частота", "4.5 ГГц"},
			{"Максимальная частота", "5.7 ГГц"}, {"TDP", "170 Вт"}, {"Сокет", "AM5"},
		},
	},
	{
		Name: "NVIDIA GeForce RTX 4090", Slug: "nvidia-geforce-rtx-4090",
		Description: "Топовая видеокарта NVIDIA с архитектурой Ada Lovelace",
		Price: "150000.00", CategorySlug: "graphics-cards", ProductType: models.ProductTypeComponent,
		Brand: "NVIDIA", Model: "GeForce RTX 4090", StockQuantity: 8,
		Specs: [][2]string{
			{"Видеопамять", "24 ГБ GDDR6X"}, {"Шина памяти", "384 бит"}, {"Базовая частота", "2230 МГц"},
			{"Boost частота", "2520 МГц"}, {"TDP", "450 Вт"}, {"Интерфейс", "PCIe 4.0 x16"},
		},
	},
	{
		Name: "AMD Radeon RX 7900 XTX", Slug: "amd-radeon-rx-7900-xtx",
		Description: "Флагманская видеокарта AMD с архитектурой RDNA 3",
		Price: "85000.00", CategorySlug: "graphics-cards", ProductType: models.ProductTypeComponent,
		Brand: "AMD", Model: "Radeon RX 7900 XTX", StockQuantity: 10,
		Specs: [][2]string{
			{"Видеопамять", "24 ГБ GDDR6"}, {"Шина памяти", "384 бит"}, {"Базовая частота", "1900 МГц"},
			{"Boost частота", "2500 МГц"}, {"TDP", "355 Вт"}, {"Интерфейс", "PCIe 4.0 x16"},
		},
	},
	{
		Name: "ASUS ROG Strix Z790-E Gaming WiFi", Slug: "asus-rog-strix-z790-e-gaming-wifi",
		Description: "Премиальная материнская плата для Intel 13-го поколения",
		Price: "25000.00", CategorySlug: "motherboards", ProductType: models.ProductTypeComponent,
		Brand: "ASUS", Model: "ROG Strix Z790-E Gaming WiFi", StockQuantity: 20,
		Specs: [][2]string{
			{"Сокет", "LGA 1700"}, {"Чипсет", "Intel Z790"}, {"Форм-фактор", "ATX"},
			{"Память", "DDR5 до 128 ГБ"}, {"Слоты PCIe", "3x PCIe 5.0 x16"}, {"WiFi", "WiFi 6E"},
		},
	},
	{
		Name: "Corsair Vengeance RGB 32GB DDR5-5600", Slug: "corsair-vengeance-rgb-32gb-ddr5-5600",
		Description: "Высокоскоростная оперативная память с RGB подсветкой",
		Price: "12000.00", CategorySlug: "ram", ProductType: models.ProductTypeComponent,
		Brand: "Corsair", Model: "Vengeance RGB 32GB DDR5-5600", StockQuantity: 25,
		Specs: [][2]string{
			{"Объем", "32 ГБ (2x16 ГБ)"}, {"Тип", "DDR5"}, {"Частота", "5600 МГц"},
			{"Тайминги", "CL36"}, {"Напряжение", "1.25 В"}, {"Подсветка", "RGB"},
		},
	},
	{
		Name: "Samsung 980 PRO 2TB NVMe SSD", Slug: "samsung-980-pro-2tb-nvme-ssd",
		Description: "Высокоскоростной NVMe SSD для профессионального использования",
		Price: "18000.00", CategorySlug: "storage", ProductType: models.ProductTypeComponent,
		Brand: "Samsung", Model: "980 PRO 2TB", StockQuantity: 30,
		Specs: [][2]string{
			{"Емкость", "2 ТБ"}, {"Интерфейс", "PCIe 4.0 x4 NVMe"}, {"Скорость чтения", "7000 МБ/с"},
			{"Скорость записи", "5000 МБ/с"}, {"Тип памяти", "3D NAND TLC"}, {"Ресурс записи", "1200 TBW"},
		},
	},
	{
		Name: "Corsair RM1000x 1000W 80+ Gold", Slug: "corsair-rm1000x-1000w-80-gold",
		Description: "Модульный блок питания с сертификацией 80+ Gold",
		Price: "15000.00", CategorySlug: "power-supplies", ProductType: models.ProductTypeComponent,
		Brand: "Corsair", Model: "RM1000x", StockQuantity: 18,
		Specs: [][2]string{
			{"Мощность", "1000 Вт"}, {"Сертификация", "80+ Gold"}, {"Модульность", "Полностью модульный"},
			{"Вентилятор", "140мм с нулевым RPM"}, {"Разъемы", "2x EPS, 6x PCIe"}, {"Гарантия", "10 лет"},
		},
	},
	{
		Name: "Fractal Design Define 7 XL", Slug: "fractal-design-define-7-xl",
		Description: "Просторный корпус для высокопроизводительных систем",
		Price: "12000.00", CategorySlug: "cases", ProductType: models.ProductTypeComponent,
		Brand: "Fractal Design", Model: "Define 7 XL", StockQuantity: 15,
		Specs: [][2]string{
			{"Форм-фактор", "E-ATX, ATX, mATX, mini-ITX"}, {"Материал", "Сталь + алюминий"},
			{"Слоты расширения", "8"}, {"Отсеки 3.5\"", "6"}, {"Отсеки 2.5\"", "2"},
			{"Вентиляторы", "2x 140мм (в комплекте)"},
		},
	},
	{
		Name: "Noctua NH-D15 chromax.black", Slug: "noctua-nh-d15-chromax-black",
		Description: "Топовый башенный кулер с двумя вентиляторами",
		Price: "8000.00", CategorySlug: "cooling", ProductType: models.ProductTypeComponent,
		Brand: "Noctua", Model: "NH-D15 chromax.black", StockQuantity: 22,
		Specs: [][2]string{
			{"Тип", "Башенный кулер"}, {"Высота", "165 мм"}, {"Вентиляторы", "2x NF-A15 PWM"},
			{"TDP", "220 Вт"}, {"Сокеты", "Intel LGA1700, AMD AM5"}, {"Уровень шума", "до 24.6 дБ(А)"},
		},
	},
	{
		Name: "Игровой ПК Intel i9 RTX 4090", Slug: "gaming-pc-intel-i9-rtx4090",
		Description: "Готовый игровой компьютер на Intel Core i9-13900K с NVIDIA GeForce RTX 4090",
		Price: "320000.00", CategorySlug: "computers", ProductType: models.ProductTypeComputer,
		Brand: "Custom", Model: "Gaming i9/4090", StockQuantity: 3,
		Specs: [][2]string{
			{"Процессор", "Intel Core i9-13900K"}, {"Видеокарта", "NVIDIA GeForce RTX 4090"},
			{"Оперативная память", "64 ГБ DDR5"}, {"Накопитель", "2 ТБ NVMe SSD"},
		},
	},
	{
		Name: "Рабочая станция AMD Ryzen 9", Slug: "workstation-pc-amd-ryzen-9",
		Description: "Рабочая станция для рендеринга и разработки на AMD Ryzen 9 7950X",
		Price: "210000.00", CategorySlug: "computers", ProductType: models.ProductTypeComputer,
		Brand: "Custom", Model: "Workstation R9", StockQuantity: 4,
		Specs: [][2]string{
			{"Процессор", "AMD Ryzen 9 7950X"}, {"Видеокарта", "AMD Radeon RX 7900 XTX"},
			{"Оперативная память", "128 ГБ DDR5"}, {"Накопитель", "4 ТБ NVMe SSD"},
		},
	},
	{
		Name: "Apple iMac 24 M3", Slug: "apple-imac-24-m3",
		Description: "Моноблок Apple с чипом M3 и дисплеем Retina 4.5K",
		Price: "165000.00", CategorySlug: "all-in-one", ProductType: models.ProductTypeAllInOne,
		Brand: "Apple", Model: "iMac 24 M3", StockQuantity: 6,
		Specs: [][2]string{
			{"Процессор", "Apple M3"}, {"Дисплей", "24\" 4.5K Retina"},
			{"Оперативная память", "16 ГБ"}, {"Накопитель", "512 ГБ SSD"},
		},
	},
	{
		Name: "HP Pavilion All-in-One 27", Slug: "hp-pavilion-all-in-one-27",
		Description: "Моноблок HP с 27-дюймовым дисплеем для дома и офиса",
		Price: "95000.00", CategorySlug: "all-in-one", ProductType: models.ProductTypeAllInOne,
		Brand: "HP", Model: "Pavilion 27", StockQuantity: 7,
		Specs: [][2]string{
			{"Процессор", "Intel Core i7-13700T"}, {"Дисплей", "27\" QHD IPS"},
			{"Оперативная память", "16 ГБ DDR4"}, {"Накопитель", "1 ТБ SSD"},
		},
	},
	{
		Name: "ASUS ROG Strix G18", Slug: "asus-rog-strix-g18",
		Description: "Игровой ноутбук с 18-дюймовым экраном 240 Гц",
		Price: "240000.00", CategorySlug: "laptops", ProductType: models.ProductTypeComputer,
		Brand: "ASUS", Model: "ROG Strix G18", StockQuantity: 5,
		Specs: [][2]string{
			{"Процессор", "Intel Core i9-13980HX"}, {"Видеокарта", "NVIDIA GeForce RTX 4080 Laptop"},
			{"Дисплей", "18\" QHD+ 240 Гц"}, {"Оперативная память", "32 ГБ DDR5"},
		},
	},
	{
		Name: "MacBook Pro 16 M3 Max", Slug: "macbook-pro-16-m3-max",
		Description: "Профессиональный ноутбук Apple с чипом M3 Max",
		Price: "350000.00", CategorySlug: "laptops", ProductType: models.ProductTypeComputer,
		Brand: "Apple", Model: "MacBook Pro 16 M3 Max", StockQuantity: 4,
		Specs: [][2]string{
			{"Процессор", "Apple M3 Max"}, {"Дисплей", "16.2\" Liquid Retina XDR"},
			{"Оперативная память", "36 ГБ"}, {"Накопитель", "1 ТБ SSD"},
		},
	},
}
