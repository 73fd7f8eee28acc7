package speech

// Category is a named keyword list. Order within a KeywordDict is
// significant: it breaks ties between equally scored tags.
type Category struct {
	Name     string   `json:"name" yaml:"name" toml:"name"`
	Keywords []string `json:"keywords" yaml:"keywords" toml:"keywords"`
}

// KeywordDict is an ordered set of categories.
type KeywordDict []Category

// Clone deep-copies d.
func (d KeywordDict) Clone() KeywordDict {
	out := make(KeywordDict, len(d))
	for i, c := range d {
		out[i] = Category{Name: c.Name, Keywords: append([]string(nil), c.Keywords...)}
	}
	return out
}

// Names lists the category names in order.
func (d KeywordDict) Names() []string {
	out := make([]string, len(d))
	for i, c := range d {
		out[i] = c.Name
	}
	return out
}

// DefaultKeywordDict returns the live-commerce category dictionary.
func DefaultKeywordDict() KeywordDict {
	return KeywordDict{
		{Name: "price", Keywords: []string{"가격", "원", "할인", "쿠폰", "특가", "무료배송", "퍼센트", "프로"}},
		{Name: "benefit", Keywords: []string{"혜택", "증정", "사은품", "적립", "포인트"}},
		{Name: "feature", Keywords: []string{"기능", "효과", "성분", "사용", "지속력", "개선", "제형", "함유", "포함"}},
		{Name: "bundle", Keywords: []string{"구성", "세트", "1+1", "묶음", "용량", "리필", "본품"}},
		{Name: "cta", Keywords: []string{"지금", "바로", "구매", "링크", "장바구니", "라이브", "방송"}},
		{Name: "delivery", Keywords: []string{"배송", "택배", "출고", "도착", "당일", "발송"}},
		{Name: "coupon", Keywords: []string{"쿠폰", "코드", "다운로드", "중복", "적용"}},
		{Name: "comparison", Keywords: []string{"비교", "차이", "보다", "대비", "경쟁"}},
		{Name: "tutorial", Keywords: []string{"사용법", "방법", "순서", "바르", "발라", "꿀팁"}},
		{Name: "qna", Keywords: []string{"질문", "궁금", "문의", "답변", "댓글"}},
	}
}

// ProductKeywordDict returns the product-category dictionary used for
// product tags.
func ProductKeywordDict() KeywordDict {
	return KeywordDict{
		{Name: "skincare", Keywords: []string{"수분크림", "토너", "세럼", "에센스", "앰플", "로션", "크림", "선크림"}},
		{Name: "makeup", Keywords: []string{"파운데이션", "쿠션", "립스틱", "틴트", "아이섀도", "마스카라", "컨실러"}},
		{Name: "mask", Keywords: []string{"마스크팩", "시트팩", "팩", "패치"}},
		{Name: "bodycare", Keywords: []string{"바디로션", "바디워시", "핸드크림", "바디오일"}},
		{Name: "haircare", Keywords: []string{"샴푸", "트리트먼트", "린스", "헤어오일", "컨디셔너"}},
	}
}
