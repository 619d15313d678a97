package csv

import "testing"

// FuzzParse checks that arbitrary input never panics and that anything
// Parse accepts survives a serialize/parse round trip.
func FuzzParse(f *testing.F) {
	f.Add([]byte("name,age\nAlice,30\nBob,25"))
	f.Add([]byte("\"a,b\",c\nd,\"e\ne\""))
	f.Add([]byte("a;b\r\n1;2\r\n"))
	f.Add([]byte("\xEF\xBB\xBFh\nv"))
	f.Add([]byte(""))
	f.Add([]byte("\"unclosed"))

	f.Fuzz(func(t *testing.T, data []byte) {
		cfg := DefaultParseConfig()
		parsed, err := Parse(data, cfg)
		if err != nil {
			return
		}
		out, err := Serialize(parsed, DefaultSerializeConfig())
		if err != nil {
			t.Fatalf("Serialize() of parsed data error = %v", err)
		}
		if _, err := Parse(out, cfg); err != nil {
			t.Fatalf("re-Parse() of serialized data error = %v\ninput %q\nserialized %q", err, data, out)
		}
	})
}

func BenchmarkParse(b *testing.B) {
	var buf []byte
	buf = append(buf, "id,name,score\n"...)
	for i := 0; i < 1000; i++ {
		buf = append(buf, "12345,\"quoted, name\",98.6\n"...)
	}
	cfg := DefaultParseConfig()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(buf, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSerialize(b *testing.B) {
	var data Data
	for i := 0; i < 1000; i++ {
		row := NewRow()
		row.Set("id", Integer(int64(i)))
		row.Set("name", String("quoted, name"))
		row.Set("score", Float(98.6))
		data = append(data, row)
	}
	cfg := DefaultSerializeConfig()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Serialize(data, cfg); err != nil {
			b.Fatal(err)
		}
	}
}
