// Package approval compares rendered documents with their approved baselines.
//
// A passing comparison removes any received artifact left by an earlier run.
// A failing comparison records the current document as the received artifact
// and returns a *MismatchError describing the first divergent line:
//
//	svc := approval.New(artifact.New(nil), naming.Scheme{Root: "./docs", Extension: "adoc"})
//	if err := svc.Approve(ctx, "pkg::TestWidget", doc); err != nil {
//		t.Fatal(err)
//	}
package approval
