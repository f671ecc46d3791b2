package models

// ErrorResponse is the uniform failure body: a single localized Arabic string.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Caller-facing Arabic messages. The API never exposes upstream detail;
// these strings are the whole failure surface.
const (
	MsgLoginRequired   = "يجب تسجيل الدخول للاستخدام"
	MsgInvalidBody     = "طلب غير صالح"
	MsgMessageRequired = "الرسالة مطلوبة"
	MsgMessageTooShort = "الرسالة قصيرة جداً (الحد الأدنى 3 أحرف)"
	MsgMessageTooLong  = "الرسالة طويلة جداً (الحد الأقصى 1000 حرف)"
	MsgRateLimited     = "تم تجاوز حد الاستخدام، يرجى المحاولة لاحقاً"
	MsgQuotaExceeded   = "يرجى إضافة رصيد لمتابعة استخدام الخدمة"
	MsgUpstreamError   = "خطأ في الاتصال بالذكاء الاصطناعي"
	MsgNotFound        = "المحتوى المطلوب غير موجود"
	MsgForbidden       = "ليس لديك صلاحية لتنفيذ هذا الإجراء"
	MsgInternal        = "حدث خطأ غير متوقع"
)
