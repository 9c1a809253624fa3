// Package advisor holds the business-advisor prompts and the offline content table used when
// no language model answers.
package advisor

import (
	"fmt"
	"strings"
)

type Kind string

const (
	KindAsk               Kind = "ask"
	KindBusinessAnalysis  Kind = "business-analysis"
	KindProductAnalysis   Kind = "product-analysis"
	KindMarketingStrategy Kind = "marketing-strategy"
	KindAnalyzeSales      Kind = "analyze-sales"
	KindPricingAdvice     Kind = "pricing-advice"
	KindCustomerInsights  Kind = "customer-insights"
)

const (
	TopicGeneral   = "general"
	TopicBusiness  = "business"
	TopicProducts  = "products"
	TopicMarketing = "marketing"
	TopicSales     = "sales"
	TopicPricing   = "pricing"
	TopicCustomers = "customers"
	TopicShipping  = "shipping"
	TopicInventory = "inventory"
)

var kindTopics = map[Kind]string{
	KindAsk:               TopicGeneral,
	KindBusinessAnalysis:  TopicBusiness,
	KindProductAnalysis:   TopicProducts,
	KindMarketingStrategy: TopicMarketing,
	KindAnalyzeSales:      TopicSales,
	KindPricingAdvice:     TopicPricing,
	KindCustomerInsights:  TopicCustomers,
}

var kindRoles = map[Kind]string{
	KindAsk:               "أنت مستشار أعمال لمتجر إلكتروني عراقي يبيع بالجملة عبر مسوقين. أجب بإيجاز وبالعربية.",
	KindBusinessAnalysis:  "أنت محلل أعمال. قيّم أداء المتجر من الأرقام المرفقة واذكر نقاط القوة والضعف وثلاث خطوات عملية.",
	KindProductAnalysis:   "أنت خبير منتجات. حلل المنتجات الأكثر مبيعاً والمخزون المنخفض واقترح ما يجب تعزيزه أو إيقافه.",
	KindMarketingStrategy: "أنت خبير تسويق رقمي. اقترح خطة تسويق قصيرة المدى تناسب المسوقين بالعمولة.",
	KindAnalyzeSales:      "أنت محلل مبيعات. فسّر توزيع حالات الطلبات والإيرادات والأرباح واذكر أسباب الإلغاء المحتملة.",
	KindPricingAdvice:     "أنت خبير تسعير. اقترح نطاقات سعر بيع مناسبة بين الحد الأدنى والأعلى مع الحفاظ على هامش ربح.",
	KindCustomerInsights:  "أنت محلل سلوك عملاء. استخرج أنماط الطلب حسب المحافظة واقترح طرق الاحتفاظ بالعملاء.",
}

// ParseKind accepts the route suffix of an advisor endpoint.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	_, ok := kindTopics[k]
	return k, ok
}

func (k Kind) Topic() string {
	if t, ok := kindTopics[k]; ok {
		return t
	}
	return TopicGeneral
}

// Stats is the live store snapshot fed into prompts.
type Stats struct {
	TotalUsers      int              `json:"totalUsers"`
	TotalProducts   int              `json:"totalProducts"`
	TotalOrders     int              `json:"totalOrders"`
	OrdersByStatus  map[string]int   `json:"ordersByStatus"`
	Revenue         float64          `json:"revenue"`
	Profit          float64          `json:"profit"`
	PendingWithdraw int              `json:"pendingWithdrawals"`
	TopProducts     []ProductSummary `json:"topProducts"`
	LowStock        []ProductSummary `json:"lowStock"`
	TopProvinces    []ProvinceCount  `json:"topProvinces"`
}

type ProductSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type ProvinceCount struct {
	Province string `json:"province"`
	Orders   int    `json:"orders"`
}

// SystemPrompt returns the role preamble for kind.
func SystemPrompt(k Kind) string {
	if role, ok := kindRoles[k]; ok {
		return role
	}
	return kindRoles[KindAsk]
}

// UserPrompt renders stats and the question into the message sent to the model.
func UserPrompt(stats Stats, question string) string {
	var b strings.Builder

	b.WriteString("بيانات المتجر الحالية:\n")
	fmt.Fprintf(&b, "- عدد المستخدمين: %d\n", stats.TotalUsers)
	fmt.Fprintf(&b, "- عدد المنتجات: %d\n", stats.TotalProducts)
	fmt.Fprintf(&b, "- عدد الطلبات: %d\n", stats.TotalOrders)
	for _, status := range sortedKeys(stats.OrdersByStatus) {
		fmt.Fprintf(&b, "  - %s: %d\n", status, stats.OrdersByStatus[status])
	}
	fmt.Fprintf(&b, "- الإيرادات: %.0f د.ع\n", stats.Revenue)
	fmt.Fprintf(&b, "- الأرباح: %.0f د.ع\n", stats.Profit)
	fmt.Fprintf(&b, "- طلبات سحب معلقة: %d\n", stats.PendingWithdraw)

	if len(stats.TopProducts) > 0 {
		b.WriteString("- الأكثر مبيعاً:\n")
		for _, p := range stats.TopProducts {
			fmt.Fprintf(&b, "  - %s (%d قطعة)\n", p.Name, p.Quantity)
		}
	}
	if len(stats.LowStock) > 0 {
		b.WriteString("- مخزون منخفض:\n")
		for _, p := range stats.LowStock {
			fmt.Fprintf(&b, "  - %s (متبقي %d)\n", p.Name, p.Quantity)
		}
	}
	if len(stats.TopProvinces) > 0 {
		b.WriteString("- المحافظات الأكثر طلباً:\n")
		for _, p := range stats.TopProvinces {
			fmt.Fprintf(&b, "  - %s: %d\n", p.Province, p.Orders)
		}
	}

	if q := strings.TrimSpace(question); q != "" {
		b.WriteString("\nالسؤال: ")
		b.WriteString(q)
		b.WriteString("\n")
	}
	return b.String()
}
