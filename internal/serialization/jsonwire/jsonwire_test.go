package jsonwire_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/danmuck/modelwire/internal/models"
	"github.com/danmuck/modelwire/internal/serialization"
	"github.com/danmuck/modelwire/internal/serialization/jsonwire"
	"github.com/danmuck/modelwire/internal/testutil/testlog"
)

func decodeODataError(t *testing.T, payload string) (*models.ODataError, error) {
	t.Helper()
	node, err := jsonwire.NewParseNode([]byte(payload))
	if err != nil {
		t.Fatalf("parse node: %v", err)
	}
	return serialization.ReadObject[*models.ODataError](node, models.CreateODataErrorFromDiscriminatorValue)
}

func TestODataErrorRoundTripPreservesUnknownFields(t *testing.T) {
	testlog.Start(t)
	in := `{"error":{"code":"BadRequest","message":"bad","details":[{"code":"c1"},{"code":"c2","target":"t"}],` +
		`"innerError":{"request-id":"r1","@odata.type":"#x","date":"2024"}},"extra":[1,true,null]}`
	got, err := decodeODataError(t, in)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.PrimaryMessage() != "bad" {
		t.Fatalf("primary message mismatch: %q", got.PrimaryMessage())
	}
	details := got.GetError().GetDetails()
	if len(details) != 2 || *details[0].GetCode() != "c1" || *details[1].GetTarget() != "t" {
		t.Fatalf("details not decoded in order: %+v", details)
	}
	inner := got.GetError().GetInnerError()
	if raw, ok := inner.GetAdditionalData()["@odata.type"]; !ok || raw.Str != "#x" {
		t.Fatalf("inner @odata.type not kept in additional data: %+v", inner.GetAdditionalData())
	}
	if _, ok := inner.GetAdditionalData()["request-id"]; ok {
		t.Fatalf("declared field leaked into additional data")
	}

	out, err := serialization.Serialize(jsonwire.NewSerializationWriterFactory(), jsonwire.ContentType, got)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	want := `{"error":{"code":"BadRequest","details":[{"code":"c1"},{"code":"c2","target":"t"}],` +
		`"innerError":{"date":"2024","request-id":"r1","@odata.type":"#x"},"message":"bad"},"extra":[1,true,null]}`
	if string(out) != want {
		t.Fatalf("serialized mismatch:\n got=%s\nwant=%s", out, want)
	}
}

func TestShapeErrorPropagatesWithFieldContext(t *testing.T) {
	testlog.Start(t)
	got, err := decodeODataError(t, `{"error":{"code":5}}`)
	if got != nil {
		t.Fatalf("expected no model on failure, got %+v", got)
	}
	if !errors.Is(err, serialization.ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
	var fieldErr *serialization.FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Field != "error" {
		t.Fatalf("expected outer field error on %q, got %v", "error", err)
	}
	var shape *serialization.ShapeError
	if !errors.As(err, &shape) || shape.Expected != serialization.KindString || shape.Actual != serialization.KindNumber {
		t.Fatalf("unexpected shape error: %v", err)
	}
}

func TestNewParseNodeRejectsInvalidJSON(t *testing.T) {
	testlog.Start(t)
	_, err := jsonwire.NewParseNode([]byte(`{"error":`))
	if !errors.Is(err, jsonwire.ErrInvalidJSON) {
		t.Fatalf("expected ErrInvalidJSON, got %v", err)
	}
}

func TestGetChildNode(t *testing.T) {
	testlog.Start(t)
	node, err := jsonwire.NewParseNode([]byte(`{"a":"first","b":null,"a":"last"}`))
	if err != nil {
		t.Fatalf("parse node: %v", err)
	}
	missing, err := node.GetChildNode("zzz")
	if err != nil || missing != nil {
		t.Fatalf("absent key should return nil, nil: node=%v err=%v", missing, err)
	}
	nullChild, err := node.GetChildNode("b")
	if err != nil || nullChild == nil || !nullChild.IsNull() {
		t.Fatalf("null member should be a null node: node=%v err=%v", nullChild, err)
	}
	dup, err := node.GetChildNode("a")
	if err != nil {
		t.Fatalf("child: %v", err)
	}
	s, err := dup.GetStringValue()
	if err != nil || s == nil || *s != "last" {
		t.Fatalf("duplicate key should resolve to last member, got %v (%v)", s, err)
	}

	scalar, err := jsonwire.NewParseNode([]byte(`"text"`))
	if err != nil {
		t.Fatalf("parse node: %v", err)
	}
	if _, err := scalar.GetChildNode("a"); !errors.Is(err, serialization.ErrShapeMismatch) {
		t.Fatalf("child of scalar should be a shape error, got %v", err)
	}
}

func TestInt64RejectsFraction(t *testing.T) {
	testlog.Start(t)
	node, err := jsonwire.NewParseNode([]byte(`1.5`))
	if err != nil {
		t.Fatalf("parse node: %v", err)
	}
	if _, err := node.GetInt64Value(); !errors.Is(err, serialization.ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
	f, err := node.GetFloat64Value()
	if err != nil || *f != 1.5 {
		t.Fatalf("float read failed: %v %v", f, err)
	}
}

func TestWriterEscapesWithoutHTMLEscaping(t *testing.T) {
	testlog.Start(t)
	body := models.NewItemBody()
	content := `<b>"quoted"</b>`
	html := models.BodyTypeHTML
	body.SetContent(&content)
	body.SetContentType(&html)

	out, err := serialization.Serialize(jsonwire.NewSerializationWriterFactory(), jsonwire.ContentType, body)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	want := `{"content":"<b>\"quoted\"</b>","contentType":"html"}`
	if string(out) != want {
		t.Fatalf("got=%s want=%s", out, want)
	}
}

func TestSerializeCollectionKeepsOrderAndNulls(t *testing.T) {
	testlog.Start(t)
	first, second := "one", "two"
	a := models.NewErrorDetails()
	a.SetCode(&first)
	b := models.NewErrorDetails()
	b.SetCode(&second)
	var typedNil *models.ErrorDetails

	out, err := serialization.SerializeCollection(jsonwire.NewSerializationWriterFactory(), jsonwire.ContentType,
		serialization.ObjectsOf([]*models.ErrorDetails{a, typedNil, b}))
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if string(out) != `[{"code":"one"},null,{"code":"two"}]` {
		t.Fatalf("unexpected collection: %s", out)
	}

	items, err := serialization.DeserializeCollection(jsonwire.NewParseNodeFactory(), jsonwire.ContentType, out,
		models.CreateErrorDetailsFromDiscriminatorValue)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if len(items) != 3 || items[1] != nil || *items[2].(*models.ErrorDetails).GetCode() != "two" {
		t.Fatalf("collection did not round trip: %+v", items)
	}
}

func TestParseNodeHooksRunAroundEveryObject(t *testing.T) {
	testlog.Start(t)
	node, err := jsonwire.NewParseNode([]byte(`{"error":{"code":"x","innerError":{"date":"d"}}}`))
	if err != nil {
		t.Fatalf("parse node: %v", err)
	}
	var before, after []string
	node.SetOnBeforeAssignFieldValues(func(p serialization.Parsable) error {
		before = append(before, typeName(p))
		return nil
	})
	node.SetOnAfterAssignFieldValues(func(p serialization.Parsable) error {
		after = append(after, typeName(p))
		return nil
	})
	if _, err := node.GetObjectValue(models.CreateODataErrorFromDiscriminatorValue); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(before) != 3 || before[0] != "odata" || before[2] != "inner" {
		t.Fatalf("unexpected before order: %v", before)
	}
	if len(after) != 3 || after[0] != "inner" || after[2] != "odata" {
		t.Fatalf("unexpected after order: %v", after)
	}
}

func TestWriterHooks(t *testing.T) {
	testlog.Start(t)
	code := "x"
	main := models.NewMainError()
	main.SetCode(&code)
	env := models.NewODataError()
	env.SetError(main)

	w := jsonwire.NewSerializationWriter()
	var seen []string
	w.SetOnBeforeSerialization(func(p serialization.Parsable) error {
		seen = append(seen, "before:"+typeName(p))
		return nil
	})
	w.SetOnAfterObjectSerialization(func(p serialization.Parsable) error {
		seen = append(seen, "after:"+typeName(p))
		return nil
	})
	w.SetOnStartObjectSerialization(func(p serialization.Parsable, sw serialization.SerializationWriter) error {
		if _, ok := p.(*models.ODataError); ok {
			marker := "v1"
			return sw.WriteStringValue("@version", &marker)
		}
		return nil
	})
	if err := w.WriteObjectValue("", env); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := w.GetSerializedContent()
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	if string(out) != `{"@version":"v1","error":{"code":"x"}}` {
		t.Fatalf("unexpected content: %s", out)
	}
	want := []string{"before:odata", "before:main", "after:main", "after:odata"}
	if len(seen) != len(want) {
		t.Fatalf("hook calls: got=%v want=%v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("hook calls: got=%v want=%v", seen, want)
		}
	}
}

func TestFactoryContentTypes(t *testing.T) {
	testlog.Start(t)
	parsers := serialization.NewParseNodeFactoryRegistry()
	writers := serialization.NewSerializationWriterFactoryRegistry()
	if err := jsonwire.Register(parsers, writers); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := parsers.GetRootParseNode("application/vnd.api+json; charset=utf-8", []byte(`{}`)); err != nil {
		t.Fatalf("vendor content type should resolve to json: %v", err)
	}
	if _, err := writers.GetSerializationWriter("text/plain"); !errors.Is(err, serialization.ErrUnsupportedContentType) {
		t.Fatalf("expected ErrUnsupportedContentType, got %v", err)
	}
	if _, err := jsonwire.NewParseNodeFactory().GetRootParseNode("", []byte(`{}`)); !errors.Is(err, serialization.ErrNullArgument) {
		t.Fatalf("expected ErrNullArgument, got %v", err)
	}
}

func TestWriterRejectsUnbalancedContent(t *testing.T) {
	testlog.Start(t)
	w := jsonwire.NewSerializationWriter()
	err := w.WriteObjectValue("", failingModel{})
	if err == nil {
		t.Fatalf("expected serialize failure")
	}
	if _, err := w.GetSerializedContent(); !errors.Is(err, jsonwire.ErrUnbalanced) {
		t.Fatalf("expected ErrUnbalanced, got %v", err)
	}
}

func TestDeclaredFieldWinsOverAdditionalData(t *testing.T) {
	testlog.Start(t)
	body := models.NewItemBody()
	typed := "typed"
	body.SetContent(&typed)
	body.GetAdditionalData()["content"] = serialization.StringValue("raw")
	body.GetAdditionalData()["note"] = serialization.StringValue("kept")

	out, err := serialization.Serialize(jsonwire.NewSerializationWriterFactory(), jsonwire.ContentType, body)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if want := `{"content":"typed","note":"kept"}`; string(out) != want {
		t.Fatalf("serialized mismatch:\n got=%s\nwant=%s", out, want)
	}

	back, err := serialization.Deserialize(jsonwire.NewParseNodeFactory(), jsonwire.ContentType, out,
		models.CreateItemBodyFromDiscriminatorValue)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if got := back.(*models.ItemBody).GetContent(); got == nil || *got != "typed" {
		t.Fatalf("expected typed content after round trip, got %v", got)
	}
}

func TestUnknownNumbersKeepLiteralText(t *testing.T) {
	testlog.Start(t)
	in := `{"code":"c","big":9007199254740993,"huge":1e400,"neg":-12345678901234567891,"pi":3.14}`
	node, err := jsonwire.NewParseNode([]byte(in))
	if err != nil {
		t.Fatalf("parse node: %v", err)
	}
	got, err := serialization.ReadObject[*models.ErrorDetails](node, models.CreateErrorDetailsFromDiscriminatorValue)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if raw := got.GetAdditionalData()["big"].Raw; raw != "9007199254740993" {
		t.Fatalf("literal text not kept: %q", raw)
	}

	out, err := serialization.Serialize(jsonwire.NewSerializationWriterFactory(), jsonwire.ContentType, got)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if string(out) != in {
		t.Fatalf("numbers changed on round trip:\n got=%s\nwant=%s", out, in)
	}
}

func TestComputedNumbersUseFloatFormatting(t *testing.T) {
	testlog.Start(t)
	d := models.NewErrorDetails()
	d.GetAdditionalData()["n"] = serialization.NumberValue(2.5)
	d.GetAdditionalData()["bad"] = serialization.RawNumberValue("NaN", 7)

	out, err := serialization.Serialize(jsonwire.NewSerializationWriterFactory(), jsonwire.ContentType, d)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if want := `{"bad":7,"n":2.5}`; string(out) != want {
		t.Fatalf("serialized mismatch:\n got=%s\nwant=%s", out, want)
	}
}

func TestDeeplyNestedAdditionalDataRoundTrips(t *testing.T) {
	testlog.Start(t)
	const depth = 1000
	nested := strings.Repeat("[", depth) + "1" + strings.Repeat("]", depth)
	in := `{"code":"c","deep":` + nested + `}`
	node, err := jsonwire.NewParseNode([]byte(in))
	if err != nil {
		t.Fatalf("parse node: %v", err)
	}
	got, err := serialization.ReadObject[*models.ErrorDetails](node, models.CreateErrorDetailsFromDiscriminatorValue)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	levels := 0
	for v := got.GetAdditionalData()["deep"]; v.Kind == serialization.KindArray; v = v.Array[0] {
		levels++
	}
	if levels != depth {
		t.Fatalf("expected %d nested arrays, got %d", depth, levels)
	}

	out, err := serialization.Serialize(jsonwire.NewSerializationWriterFactory(), jsonwire.ContentType, got)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if string(out) != in {
		t.Fatalf("nested payload changed on round trip")
	}
}

type failingModel struct{}

func (failingModel) GetFieldDeserializers() map[string]serialization.FieldDeserializer {
	return map[string]serialization.FieldDeserializer{}
}

func (failingModel) Serialize(serialization.SerializationWriter) error {
	return errors.New("boom")
}

func typeName(p serialization.Parsable) string {
	switch p.(type) {
	case *models.ODataError:
		return "odata"
	case *models.MainError:
		return "main"
	case *models.InnerError:
		return "inner"
	default:
		return "other"
	}
}
