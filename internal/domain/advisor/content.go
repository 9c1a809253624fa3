package advisor

// DefaultBlocks is the offline advice shipped with the service. Order matters: more specific
// topics come first so their keywords win over broad ones.
var DefaultBlocks = []Block{
	{
		Topic:    TopicPricing,
		Keywords: []string{"سعر", "اسعار", "تسعير", "هامش", "خصم", "price", "pricing", "discount", "margin"},
		Content: "نصائح التسعير:\n" +
			"1. اختر سعر بيع في منتصف النطاق المسموح للمنتج ثم عدّله حسب استجابة الزبائن.\n" +
			"2. احسب كلفة التوصيل للمحافظة قبل تحديد السعر النهائي حتى لا يأكل الربح.\n" +
			"3. استخدم العروض المحدودة بوقت بدل الخصم الدائم للحفاظ على قيمة المنتج.",
	},
	{
		Topic:    TopicShipping,
		Keywords: []string{"توصيل", "شحن", "محافظه", "delivery", "shipping"},
		Content: "نصائح التوصيل:\n" +
			"1. أكّد العنوان ورقم الهاتف مع الزبون قبل إرسال الطلب لتقليل المرتجعات.\n" +
			"2. راقب الطلبات العالقة في حالة الشحن وتابعها مع شركة التوصيل يومياً.\n" +
			"3. وضّح سعر التوصيل للزبون منذ البداية.",
	},
	{
		Topic:    TopicInventory,
		Keywords: []string{"مخزون", "كميه", "نفاد", "stock", "inventory"},
		Content: "إدارة المخزون:\n" +
			"1. أعد طلب المنتجات التي تقل كميتها عن أسبوع من المبيعات المعتادة.\n" +
			"2. أوقف عرض المنتجات النافدة مؤقتاً بدل حذفها.\n" +
			"3. راجع المنتجات الراكدة شهرياً وقدّم عليها عروضاً.",
	},
	{
		Topic:    TopicMarketing,
		Keywords: []string{"تسويق", "اعلان", "اعلانات", "فيسبوك", "انستغرام", "تيك توك", "marketing", "ads"},
		Content: "استراتيجية التسويق:\n" +
			"1. صوّر المنتج بإضاءة جيدة وانشر فيديو قصير يوضح الاستخدام.\n" +
			"2. ركّز الإعلانات على المحافظات التي تأتي منها أغلب الطلبات.\n" +
			"3. اجمع تقييمات الزبائن وانشرها كدليل اجتماعي.",
	},
	{
		Topic:    TopicSales,
		Keywords: []string{"مبيعات", "بيع", "طلبات", "الغاء", "مرتجع", "sales", "orders"},
		Content: "تحليل المبيعات:\n" +
			"1. قارن الطلبات المكتملة بالملغاة؛ ارتفاع الإلغاء يعني غالباً مشكلة في التأكيد أو السعر.\n" +
			"2. تابع المنتجات الأكثر مبيعاً وحافظ على توفرها.\n" +
			"3. اتصل بالزبون خلال ساعة من الطلب لتأكيده.",
	},
	{
		Topic:    TopicCustomers,
		Keywords: []string{"زبون", "زبائن", "عملاء", "عميل", "customer", "customers"},
		Content: "رؤى العملاء:\n" +
			"1. احتفظ بقائمة الزبائن المتكررين وراسلهم عند وصول منتجات جديدة.\n" +
			"2. اسأل عن سبب الرفض عند إلغاء الطلب وسجّله.\n" +
			"3. خدمة سريعة ولطيفة بعد البيع تجلب طلبات جديدة.",
	},
	{
		Topic:    TopicProducts,
		Keywords: []string{"منتج", "منتجات", "بضاعه", "product", "products"},
		Content: "تحليل المنتجات:\n" +
			"1. ركّز على المنتجات ذات الربح الأعلى لكل قطعة والطلب المستمر.\n" +
			"2. أضف ألواناً متعددة للمنتجات الناجحة بدل إضافة منتجات جديدة كثيرة.\n" +
			"3. اكتب وصفاً واضحاً بالمقاسات والمواد.",
	},
	{
		Topic:    TopicBusiness,
		Keywords: []string{"ارباح", "ربح", "نمو", "خطه", "profit", "growth", "business"},
		Content: "تحليل الأعمال:\n" +
			"1. راقب نسبة الأرباح المحققة إلى المعلقة؛ ارتفاع المعلق يعني بطء في التوصيل.\n" +
			"2. اسحب أرباحك بانتظام لتقييم السيولة.\n" +
			"3. حدّد هدفاً شهرياً لعدد الطلبات المكتملة وتابعه أسبوعياً.",
	},
	{
		Topic:    TopicGeneral,
		Keywords: nil,
		Content: "نصائح عامة للنجاح في البيع:\n" +
			"1. اختر منتجات مطلوبة بهامش ربح واضح.\n" +
			"2. أكّد كل طلب مع الزبون قبل الشحن.\n" +
			"3. تابع أرباحك وطلباتك من لوحة التحكم يومياً.",
	},
}
