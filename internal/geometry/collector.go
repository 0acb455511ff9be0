// File: internal/geometry/collector.go
package geometry

// collectorJS walks the rendered DOM from document.body and reports, per
// element, its tag, own text, viewport-relative border box and the computed
// style subset the classifier and style mapper consume. Hidden subtrees and
// non-content tags are skipped.
const collectorJS = `(() => {
	const SKIP = new Set(['SCRIPT', 'STYLE', 'META', 'LINK', 'TITLE', 'NOSCRIPT', 'TEMPLATE', 'BR', 'HEAD']);
	const PROPS = [
		'background', 'background-color', 'background-image', 'color',
		'font-family', 'font-size', 'font-weight', 'font-style', 'text-align',
		'border', 'border-top', 'border-right', 'border-bottom', 'border-left',
		'border-radius', 'padding', 'margin', 'display', 'position', 'opacity',
		'transform'
	];
	let counter = 0;

	const directText = (node) => {
		let text = '';
		for (const child of node.childNodes) {
			if (child.nodeType === Node.TEXT_NODE) text += child.textContent;
		}
		return text.replace(/\s+/g, ' ').trim();
	};

	const collect = (node) => {
		if (node.nodeType !== Node.ELEMENT_NODE || SKIP.has(node.tagName)) return null;
		const computed = getComputedStyle(node);
		if (computed.display === 'none' || computed.visibility === 'hidden') return null;

		const rect = node.getBoundingClientRect();
		const styles = {};
		for (const prop of PROPS) {
			const value = computed.getPropertyValue(prop);
			if (value && value !== 'none' && value !== 'normal') styles[prop] = value;
		}

		counter++;
		const out = {
			id: node.id || (node.tagName.toLowerCase() + '-' + counter),
			tag: node.tagName.toLowerCase(),
			text: directText(node),
			rect: { x: rect.x, y: rect.y, w: rect.width, h: rect.height },
			styles: styles,
			children: []
		};
		for (const child of node.children) {
			const c = collect(child);
			if (c) out.children.push(c);
		}
		return out;
	};

	return collect(document.body);
})()`
